/*
Package classify breaks raw input lines down into parsed candidates and
validates candidate addresses.

Raw lines come in three flavors, as found in the wild on address listings:

	1.2.3.4
	1.2.3.4 443 US
	1.2.3.4#US

[Classify] recognizes these as “bare”, “tripled”, and “tagged” lines
respectively. Already normalized records, such as “1.2.3.4:443#US”, are tagged
lines with an additional port hint. Port hints as well as the trailing tokens of
tripled lines are informational only.

[Validate] then tells whether a candidate address is a syntactically valid IPv4
or IPv6 address literal.
*/
package classify
