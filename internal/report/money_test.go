package report_test

import (
	"testing"

	"github.com/frahmantamala/allowance-management/internal/report"
	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"
)

func TestReport(t *testing.T) {
	RegisterFailHandler(Fail)
	RunSpecs(t, "Report Suite")
}

var _ = Describe("Money formatting", func() {
	Describe("FormatETB", func() {
		It("renders KPI amounts without fraction digits", func() {
			Expect(report.FormatETB(150000, 0)).To(Equal("ETB 1,500"))
		})

		It("rounds half up at zero digits", func() {
			Expect(report.FormatETB(150050, 0)).To(Equal("ETB 1,501"))
			Expect(report.FormatETB(150049, 0)).To(Equal("ETB 1,500"))
		})

		It("renders table amounts with two digits", func() {
			Expect(report.FormatETB(123456789, 2)).To(Equal("ETB 1,234,567.89"))
		})

		It("handles zero", func() {
			Expect(report.FormatETB(0, 0)).To(Equal("ETB 0"))
			Expect(report.FormatETB(0, 2)).To(Equal("ETB 0.00"))
		})

		It("keeps the sign on negative amounts", func() {
			Expect(report.FormatETB(-250075, 2)).To(Equal("ETB -2,500.75"))
		})
	})

	Describe("UsagePercentage", func() {
		It("computes used over issued", func() {
			Expect(report.UsagePercentage(50000, 100000)).To(BeNumerically("~", 50.0))
		})

		It("passes over-usage through above 100", func() {
			Expect(report.UsagePercentage(150000, 100000)).To(BeNumerically("~", 150.0))
			Expect(report.UsagePercentage(250000, 100000)).To(BeNumerically("~", 250.0))
		})

		It("reads zero issued as zero usage", func() {
			Expect(report.UsagePercentage(50000, 0)).To(BeZero())
		})

		It("never goes negative", func() {
			Expect(report.UsagePercentage(-100, 100000)).To(BeZero())
		})
	})

	Describe("BarWidth", func() {
		It("sizes the bar relative to the issued amount", func() {
			Expect(report.BarWidth(25000, 100000)).To(BeNumerically("~", 25.0))
		})

		It("caps at 100", func() {
			Expect(report.BarWidth(300000, 100000)).To(Equal(100.0))
		})

		It("gives no bar when nothing was issued", func() {
			Expect(report.BarWidth(25000, 0)).To(BeZero())
		})

		It("gives no bar without overshoot", func() {
			Expect(report.BarWidth(0, 100000)).To(BeZero())
		})
	})
})
