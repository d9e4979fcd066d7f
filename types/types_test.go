// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package types

import (
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

var _ = Describe("records and results", func() {

	DescribeTable("renders records",
		func(r ResolvedRecord, expected string) {
			Expect(r.String()).To(Equal(expected))
		},
		Entry("IPv4", ResolvedRecord{Address: "1.2.3.4", Port: 443, Location: "US"}, "1.2.3.4:443#US"),
		Entry("IPv6", ResolvedRecord{Address: "2001:db8::1", Port: 8443, Location: "DE"}, "[2001:db8::1]:8443#DE"),
		Entry("unknown location", ResolvedRecord{Address: "1.2.3.4", Port: 80, Location: DefaultUnknownLocation},
			"1.2.3.4:80#"+DefaultUnknownLocation),
	)

	It("detects unknown locations", func() {
		r := ResolvedRecord{Address: "1.2.3.4", Port: 443, Location: "?"}
		Expect(r.IsUnknown("?")).To(BeTrue())
		Expect(r.IsUnknown(DefaultUnknownLocation)).To(BeFalse())
	})

	It("renders results of all kinds", func() {
		Expect(NewResolved(ResolvedRecord{Address: "1.2.3.4", Port: 443, Location: "US"}).String()).
			To(Equal("1.2.3.4:443#US"))
		Expect(NewPassThrough("# comment").String()).To(Equal("# comment"))
		Expect(Result{}.String()).To(BeEmpty())
		Expect(Result{}.Kind).To(Equal(Dropped))
	})

	It("stringifies shapes and kinds", func() {
		Expect(Tagged.String()).To(Equal("tagged"))
		Expect(Shape(42).String()).To(Equal("Shape(42)"))
		Expect(PassThrough.String()).To(Equal("pass-through"))
		Expect(ResultKind(42).String()).To(Equal("ResultKind(42)"))
	})

	It("collapses duplicates and sorts", func() {
		s := NewResultSet()
		Expect(s.Insert("b")).To(BeTrue())
		Expect(s.Insert("a")).To(BeTrue())
		Expect(s.Insert("b")).To(BeFalse())
		Expect(s.Len()).To(Equal(2))
		Expect(s.Contains("a")).To(BeTrue())
		Expect(s.Contains("c")).To(BeFalse())
		Expect(s.Sorted()).To(Equal([]string{"a", "b"}))
	})

	It("clones sets", func() {
		s := NewResultSet()
		s.Insert("a")
		clone := s.Clone()
		s.Insert("b")
		Expect(clone.Sorted()).To(Equal([]string{"a"}))
	})

})
