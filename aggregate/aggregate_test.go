// (c) Siemens AG 2023
//
// SPDX-License-Identifier: MIT

package aggregate

import (
	"context"
	"time"

	"github.com/siemens/ipgeotag/types"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
	. "github.com/onsi/gomega/gleak"
)

const unknown = "??"

func resolved(addr string, port int, loc string) types.Result {
	return types.NewResolved(types.ResolvedRecord{Address: addr, Port: port, Location: loc})
}

var _ = Describe("aggregating results", func() {

	BeforeEach(func() {
		goodgos := Goroutines()
		DeferCleanup(func() {
			Eventually(Goroutines).Within(2 * time.Second).ProbeEvery(100 * time.Millisecond).
				ShouldNot(HaveLeaked(goodgos))
		})
	})

	It("collapses duplicates and sorts", func() {
		a := New(unknown)
		a.Add(resolved("192.0.2.2", 443, "DE"))
		a.Add(resolved("192.0.2.1", 443, "US"))
		a.Add(resolved("192.0.2.2", 443, "DE"))
		a.Add(resolved("192.0.2.2", 8443, "DE"))
		ok, failed := a.Sets()
		Expect(ok.Sorted()).To(Equal([]string{
			"192.0.2.1:443#US",
			"192.0.2.2:443#DE",
			"192.0.2.2:8443#DE",
		}))
		Expect(failed.Len()).To(BeZero())
		Expect(a.Stats()).To(Equal(Stats{Resolved: 4}))
	})

	It("keeps failed records in both sets", func() {
		a := New(unknown)
		a.Add(resolved("2001:db8::1", 443, unknown))
		a.Add(resolved("192.0.2.1", 443, "DE"))
		ok, failed := a.Sets()
		Expect(ok.Sorted()).To(ConsistOf("[2001:db8::1]:443#??", "192.0.2.1:443#DE"))
		Expect(failed.Sorted()).To(ConsistOf("[2001:db8::1]:443#??"))
		Expect(a.Stats().Failed).To(Equal(1))
	})

	It("keeps passed-through lines only in the ok set", func() {
		a := New(unknown)
		a.Add(types.NewPassThrough("not-an-ip"))
		a.Add(types.NewPassThrough("not-an-ip"))
		a.Add(types.Result{Kind: types.Dropped})
		ok, failed := a.Sets()
		Expect(ok.Sorted()).To(Equal([]string{"not-an-ip"}))
		Expect(failed.Len()).To(BeZero())
		Expect(a.Stats()).To(Equal(Stats{PassedThrough: 2}))
		Expect(a.Stats().Total()).To(Equal(2))
	})

	It("hands out snapshots", func() {
		a := New(unknown)
		a.Add(types.NewPassThrough("a"))
		ok, _ := a.Sets()
		a.Add(types.NewPassThrough("b"))
		Expect(ok.Len()).To(Equal(1))
	})

	It("tracks a result stream until closed", func(ctx context.Context) {
		a := New(unknown)
		results := make(chan types.Result)
		go func() {
			results <- resolved("192.0.2.1", 443, "DE")
			results <- types.NewPassThrough("foo")
			close(results)
		}()
		Expect(a.Track(ctx, results)).To(Succeed())
		ok, _ := a.Sets()
		Expect(ok.Len()).To(Equal(2))
	})

	It("stops tracking when the context is done", func() {
		a := New(unknown)
		ctx, cancel := context.WithCancel(context.Background())
		cancel()
		Expect(a.Track(ctx, make(chan types.Result))).To(MatchError(context.Canceled))
	})

})
