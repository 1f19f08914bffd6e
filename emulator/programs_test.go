package emulator_test

import (
	"bytes"
	"errors"
	"strings"

	. "github.com/onsi/ginkgo/v2"
	. "github.com/onsi/gomega"

	"github.com/ezrec/cnstr/emulator"
	"github.com/ezrec/cnstr/lexer"
	"github.com/ezrec/cnstr/token"
	"github.com/ezrec/cnstr/vm"
)

var _ = Describe("Emulator", func() {
	var (
		emu *emulator.Emulator
		out *bytes.Buffer
	)

	load := func(lines ...string) {
		Expect(emu.Load(strings.NewReader(strings.Join(lines, "\n")))).To(Succeed())
	}

	BeforeEach(func() {
		out = &bytes.Buffer{}
		emu = emulator.NewEmulator(out)
	})

	Context("when running a counting loop", func() {
		BeforeEach(func() {
			load(
				"# count to three",
				"set ra 0",
				"setjmpp 'loop'",
				"add ra 1 ra",
				"stdout ra endl",
				"jmpif 'loop' ra < 3",
			)
		})

		It("should print each value", func() {
			Expect(emu.Run()).To(Succeed())
			Expect(out.String()).To(Equal("1.0\n2.0\n3.0\n"))
		})

		It("should leave the final state for the dump", func() {
			Expect(emu.Run()).To(Succeed())
			Expect(emu.Vm.Registers.Get("ra")).To(Equal(token.Number(3)))

			dump := &bytes.Buffer{}
			Expect(emu.Dump(dump)).To(Succeed())
			Expect(dump.String()).To(Equal("registers: {'ra': 3.0}\njmp points: {'start': 0, 'loop': 2}\n"))
		})

		It("should be repeatable after a reset", func() {
			Expect(emu.Run()).To(Succeed())
			Expect(emu.Run()).To(Succeed())
			Expect(out.String()).To(Equal("1.0\n2.0\n3.0\n1.0\n2.0\n3.0\n"))
		})
	})

	Context("when building strings", func() {
		It("should append and index by character", func() {
			load(
				"set rs 'héllo'",
				"strapp rs ' world' rs",
				"strlen rs rl",
				"charat rs 1 rc",
				"stdout rs , rl , rc",
			)
			Expect(emu.Run()).To(Succeed())
			Expect(out.String()).To(Equal("héllo world 11.0 é"))
		})
	})

	Context("with register presets", func() {
		It("should apply presets before the first line", func() {
			Expect(emu.Predefine("rn", "3 * 5")).To(Succeed())
			load("mul rn 2 rn", "stdout rn")
			Expect(emu.Run()).To(Succeed())
			Expect(out.String()).To(Equal("30.0"))
		})

		It("should reject a preset that is not a number or string", func() {
			err := emu.Predefine("rn", "{}")
			Expect(err).To(MatchError(emulator.ErrPredefineType))
		})
	})

	Context("when the source has lexical errors", func() {
		It("should report every bad line", func() {
			err := emu.Load(strings.NewReader("set RA 1\nmov ra\nset rb 'ok\nadd rb rb rb\n"))

			var batch *lexer.ErrTokenize
			Expect(errors.As(err, &batch)).To(BeTrue())
			Expect(batch.Errors).To(HaveLen(2))
		})
	})

	Context("when the program fails at runtime", func() {
		It("should stop at the failing line", func() {
			load(
				"set ra 'text'",
				"stdout 'before'",
				"add ra 1 ra",
				"stdout 'after'",
			)
			err := emu.Run()
			Expect(err).To(MatchError(vm.ErrTypeMismatch))
			Expect(out.String()).To(Equal("before"))

			var rt *vm.ErrRuntime
			Expect(errors.As(err, &rt)).To(BeTrue())
			Expect(rt.LineNo).To(Equal(2))
		})

		It("should reject a jump to an undeclared point before running", func() {
			load(
				"stdout 'never'",
				"jmp 'nowhere'",
			)
			Expect(emu.Run()).To(MatchError(vm.ErrUndeclaredJumpPoint))
			Expect(out.String()).To(BeEmpty())
		})
	})
})
