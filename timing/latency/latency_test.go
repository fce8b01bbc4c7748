package latency_test

import (
	"os"
	"path/filepath"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/reusesim/insts"
	"github.com/sarchlab/reusesim/timing/latency"
)

var _ = Describe("Latency", func() {
	var table *latency.Table

	BeforeEach(func() {
		table = latency.NewTable()
	})

	Describe("Default Timing Values", func() {
		It("should have correct ALU latency", func() {
			Expect(table.Config().ALULatency).To(Equal(uint64(1)))
		})

		It("should have correct load latency", func() {
			Expect(table.Config().LoadLatency).To(Equal(uint64(4)))
		})

		It("should have correct reuse latency", func() {
			Expect(table.ReuseLatency()).To(Equal(uint64(1)))
		})
	})

	DescribeTable("Class latencies",
		func(class insts.OpClass, expected uint64) {
			Expect(table.GetLatency(class)).To(Equal(expected))
		},
		Entry("integer ALU", insts.OpClassIntALU, uint64(1)),
		Entry("integer multiply", insts.OpClassIntMul, uint64(3)),
		Entry("integer divide (midpoint)", insts.OpClassIntDiv, uint64(12)),
		Entry("FP add", insts.OpClassFloatAdd, uint64(3)),
		Entry("FP multiply", insts.OpClassFloatMul, uint64(4)),
		Entry("FP divide", insts.OpClassFloatDiv, uint64(10)),
		Entry("load", insts.OpClassLoad, uint64(4)),
		Entry("store", insts.OpClassStore, uint64(1)),
		Entry("branch", insts.OpClassBranch, uint64(1)),
		Entry("syscall", insts.OpClassSyscall, uint64(1)),
		Entry("unknown", insts.OpClassUnknown, uint64(1)),
	)

	Describe("Variable latency", func() {
		It("should report the divide range", func() {
			Expect(table.GetMinLatency(insts.OpClassIntDiv)).To(Equal(uint64(10)))
			Expect(table.GetMaxLatency(insts.OpClassIntDiv)).To(Equal(uint64(15)))
		})

		It("should use fixed latency for other classes", func() {
			Expect(table.GetMinLatency(insts.OpClassIntMul)).To(Equal(uint64(3)))
			Expect(table.GetMaxLatency(insts.OpClassIntMul)).To(Equal(uint64(3)))
		})
	})

	Describe("Saved cycles", func() {
		It("should save latency minus reuse latency", func() {
			Expect(table.SavedCycles(insts.OpClassFloatDiv)).To(Equal(uint64(9)))
			Expect(table.SavedCycles(insts.OpClassIntMul)).To(Equal(uint64(2)))
		})

		It("should save nothing for single-cycle operations", func() {
			Expect(table.SavedCycles(insts.OpClassIntALU)).To(BeZero())
		})

		It("should never go negative", func() {
			config := latency.DefaultTimingConfig()
			config.ReuseLatency = 5
			custom := latency.NewTableWithConfig(config)
			Expect(custom.SavedCycles(insts.OpClassIntMul)).To(BeZero())
		})
	})

	Describe("Instruction Type Detection", func() {
		It("should detect memory operations", func() {
			Expect(table.IsMemoryOp(insts.OpClassLoad)).To(BeTrue())
			Expect(table.IsMemoryOp(insts.OpClassStore)).To(BeTrue())
			Expect(table.IsMemoryOp(insts.OpClassIntALU)).To(BeFalse())
		})

		It("should detect branch operations", func() {
			Expect(table.IsBranchOp(insts.OpClassBranch)).To(BeTrue())
			Expect(table.IsBranchOp(insts.OpClassSyscall)).To(BeFalse())
		})
	})

	Describe("Custom Configuration", func() {
		It("should use custom config values", func() {
			config := latency.DefaultTimingConfig()
			config.ALULatency = 2
			config.FPMulLatency = 6

			custom := latency.NewTableWithConfig(config)
			Expect(custom.GetLatency(insts.OpClassIntALU)).To(Equal(uint64(2)))
			Expect(custom.GetLatency(insts.OpClassFloatMul)).To(Equal(uint64(6)))
		})
	})
})

var _ = Describe("TimingConfig", func() {
	Describe("Default Config", func() {
		It("should create valid default config", func() {
			config := latency.DefaultTimingConfig()
			Expect(config.Validate()).To(Succeed())
		})
	})

	Describe("Validation", func() {
		It("should reject zero ALU latency", func() {
			config := latency.DefaultTimingConfig()
			config.ALULatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero load latency", func() {
			config := latency.DefaultTimingConfig()
			config.LoadLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero FP latency", func() {
			config := latency.DefaultTimingConfig()
			config.FPDivLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject zero reuse latency", func() {
			config := latency.DefaultTimingConfig()
			config.ReuseLatency = 0
			Expect(config.Validate()).To(HaveOccurred())
		})

		It("should reject inverted divide latency range", func() {
			config := latency.DefaultTimingConfig()
			config.DivideLatencyMin = 20
			config.DivideLatencyMax = 10
			Expect(config.Validate()).To(HaveOccurred())
		})
	})

	Describe("Clone", func() {
		It("should create independent copy", func() {
			original := latency.DefaultTimingConfig()
			clone := original.Clone()

			clone.ALULatency = 100

			Expect(original.ALULatency).To(Equal(uint64(1)))
			Expect(clone.ALULatency).To(Equal(uint64(100)))
		})
	})

	Describe("File Operations", func() {
		var tempDir string

		BeforeEach(func() {
			var err error
			tempDir, err = os.MkdirTemp("", "latency-test")
			Expect(err).NotTo(HaveOccurred())
		})

		AfterEach(func() {
			_ = os.RemoveAll(tempDir)
		})

		It("should save and load config", func() {
			original := latency.DefaultTimingConfig()
			original.ALULatency = 5
			original.ReuseLatency = 2

			path := filepath.Join(tempDir, "timing.json")
			Expect(original.SaveConfig(path)).To(Succeed())

			loaded, err := latency.LoadConfig(path)
			Expect(err).NotTo(HaveOccurred())
			Expect(loaded).To(Equal(original))
		})

		It("should return error for non-existent file", func() {
			_, err := latency.LoadConfig("/nonexistent/path/timing.json")
			Expect(err).To(HaveOccurred())
		})

		It("should return error for invalid JSON", func() {
			path := filepath.Join(tempDir, "invalid.json")
			err := os.WriteFile(path, []byte("not valid json"), 0644)
			Expect(err).NotTo(HaveOccurred())

			_, err = latency.LoadConfig(path)
			Expect(err).To(HaveOccurred())
		})
	})
})
