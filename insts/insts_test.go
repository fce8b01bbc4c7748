package insts_test

import (
	"encoding/json"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/sarchlab/reusesim/insts"
)

var _ = Describe("Insts Package", func() {
	It("should have a zero Instruction", func() {
		var i insts.Instruction
		Expect(i).To(BeZero())
	})

	Describe("OpClass", func() {
		It("should classify integer classes", func() {
			Expect(insts.OpClassIntALU.IsInt()).To(BeTrue())
			Expect(insts.OpClassIntDiv.IsInt()).To(BeTrue())
			Expect(insts.OpClassFloatAdd.IsInt()).To(BeFalse())
		})

		It("should classify floating-point classes", func() {
			Expect(insts.OpClassFloatMul.IsFloat()).To(BeTrue())
			Expect(insts.OpClassLoad.IsFloat()).To(BeFalse())
		})

		It("should only reuse arithmetic classes", func() {
			Expect(insts.OpClassIntMul.Reusable()).To(BeTrue())
			Expect(insts.OpClassFloatDiv.Reusable()).To(BeTrue())
			Expect(insts.OpClassLoad.Reusable()).To(BeFalse())
			Expect(insts.OpClassStore.Reusable()).To(BeFalse())
			Expect(insts.OpClassBranch.Reusable()).To(BeFalse())
			Expect(insts.OpClassSyscall.Reusable()).To(BeFalse())
			Expect(insts.OpClassUnknown.Reusable()).To(BeFalse())
		})

		It("should parse trace names", func() {
			c, err := insts.ParseOpClass(" Float_Add ")
			Expect(err).ToNot(HaveOccurred())
			Expect(c).To(Equal(insts.OpClassFloatAdd))
		})

		It("should reject unknown names", func() {
			_, err := insts.ParseOpClass("vector")
			Expect(err).To(HaveOccurred())

			_, err = insts.ParseOpClass("unknown")
			Expect(err).To(HaveOccurred())
		})

		It("should print out-of-range classes", func() {
			Expect(insts.OpClass(200).String()).To(Equal("OpClass(200)"))
		})
	})

	Describe("Instruction JSON", func() {
		It("should encode the class by name", func() {
			inst := insts.Instruction{
				PC:       0x1000,
				Class:    insts.OpClassIntALU,
				Operands: []uint64{5, 10},
				Results:  []uint64{15},
			}

			data, err := json.Marshal(inst)
			Expect(err).ToNot(HaveOccurred())
			Expect(string(data)).To(ContainSubstring(`"class":"int_alu"`))

			var decoded insts.Instruction
			Expect(json.Unmarshal(data, &decoded)).To(Succeed())
			Expect(decoded).To(Equal(inst))
		})
	})

	Describe("Clone", func() {
		It("should not share operand or result storage", func() {
			inst := &insts.Instruction{
				PC:       0x2000,
				Class:    insts.OpClassIntMul,
				Operands: []uint64{3, 4},
				Results:  []uint64{12},
			}

			clone := inst.Clone()
			clone.Operands[0] = 99
			clone.Results[0] = 99

			Expect(inst.Operands).To(Equal([]uint64{3, 4}))
			Expect(inst.Results).To(Equal([]uint64{12}))
		})
	})
})
