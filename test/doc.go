/*
Package test provides fakes and fixtures shared by the package tests: geo
providers and locators counting their invocations, a locator measuring how
many lookups are in flight at the same time, and a fake web geolocation
service.
*/
package test
