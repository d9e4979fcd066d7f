/*
Package source fetches raw candidate-address listings line by line.

Listings can be fetched from web servers ([HTTP]), read from files ([File]),
or read from any [io.Reader] such as stdin ([Reader]). [For] picks the right
kind of source given a source specification.

Web listings get decoded into UTF-8 according to the character set announced
in their Content-Type header, or as sniffed from the listing itself.
*/
package source
