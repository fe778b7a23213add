package cpu

import "i8080/bus"

// Decode is by opcode byte, per spec §4.2.2: most of the instruction set
// falls into a handful of regular bit-field families (oo_ddd_sss and its
// relatives); the rest is a short list of fixed single-byte or
// fixed-with-operand forms. execute dispatches in that order: fixed
// single-opcode forms first (so e.g. HALT is never mistaken for a MOV),
// then the regular families by bitmask, falling back to the irregular
// control-flow/stack/IO opcodes.
func (c *Cpu) execute(b bus.Bus, op byte) Cycles {
	switch {
	case op == 0x76: // HALT
		c.State = Halted
		return 4

	case isNopAlias(op):
		return 4

	case op >= 0x40 && op <= 0x7F: // MOV r,r' (0x76 already handled above)
		return c.execMov(b, op)

	case op >= 0x80 && op <= 0xBF: // ALU A,r
		return c.execAluReg(b, op)

	case op&0xC7 == 0x06: // MVI r,n  (00ddd110)
		return c.execMvi(b, op)

	case op&0xC7 == 0x04: // INR r    (00ddd100)
		return c.execInr(b, op)

	case op&0xC7 == 0x05: // DCR r    (00ddd101)
		return c.execDcr(b, op)

	case op&0xC7 == 0xC6: // ALU A,n  (11ooo110)
		return c.execAluImm(b, op)

	case op&0xCF == 0x01: // LXI rp,nn
		rp := (op >> 4) & 0x3
		c.rpSet(rp, c.fetchWord(b))
		return 10

	case op&0xCF == 0x03: // INX rp
		rp := (op >> 4) & 0x3
		c.rpSet(rp, c.rpGet(rp)+1)
		return 6

	case op&0xCF == 0x0B: // DCX rp
		rp := (op >> 4) & 0x3
		c.rpSet(rp, c.rpGet(rp)-1)
		return 6

	case op&0xCF == 0x09: // DAD rp
		rp := (op >> 4) & 0x3
		c.DAD(c.rpGet(rp))
		return 11

	case op&0xCF == 0xC5: // PUSH rp2 (rp2: 3=AF)
		rp := (op >> 4) & 0x3
		c.push(b, c.rpGet2(rp))
		return 11

	case op&0xCF == 0xC1: // POP rp2
		rp := (op >> 4) & 0x3
		c.rpSet2(rp, c.pop(b))
		return 10

	case op&0xC7 == 0xC7: // RST n
		n := (op >> 3) & 0x7
		c.call(b, uint16(n)*8)
		return 11

	case op&0xC7 == 0xC2: // Jcc
		cc := (op >> 3) & 0x7
		target := c.fetchWord(b)
		if c.condTest(cc) {
			c.PC = target
		}
		return 10

	case op&0xC7 == 0xC4: // Ccc
		cc := (op >> 3) & 0x7
		target := c.fetchWord(b)
		if c.condTest(cc) {
			c.call(b, target)
			return 17
		}
		return 11

	case op&0xC7 == 0xC0: // Rcc
		cc := (op >> 3) & 0x7
		if c.condTest(cc) {
			c.PC = bus.Read16(b, c.SP)
			c.SP += 2
			return 11
		}
		return 5

	default:
		return c.execMisc(b, op)
	}
}

func isNopAlias(op byte) bool {
	switch op {
	case 0x00, 0x08, 0x10, 0x18, 0x20, 0x28, 0x30, 0x38:
		return true
	}
	return false
}

// execMov handles the 01ddd sss MOV r,r' family, 7 cycles if either operand
// is the memory operand (HL), 5 otherwise.
func (c *Cpu) execMov(b bus.Bus, op byte) Cycles {
	dst := (op >> 3) & 0x7
	src := op & 0x7
	c.writeReg(b, dst, c.readReg(b, src))
	if dst == 6 || src == 6 {
		return 7
	}
	return 5
}

// execAluReg handles the 10ooo sss ALU A,r family.
func (c *Cpu) execAluReg(b bus.Bus, op byte) Cycles {
	o := (op >> 3) & 0x7
	r := op & 0x7
	v := c.readReg(b, r)
	c.aluOp(o, v)
	if r == 6 {
		return 7
	}
	return 4
}

func (c *Cpu) execAluImm(b bus.Bus, op byte) Cycles {
	o := (op >> 3) & 0x7
	v := c.fetchByte(b)
	c.aluOp(o, v)
	return 7
}

func (c *Cpu) aluOp(o byte, v byte) {
	switch o {
	case 0:
		c.ADD(v)
	case 1:
		c.ADC(v)
	case 2:
		c.SUB(v)
	case 3:
		c.SBB(v)
	case 4:
		c.ANA(v)
	case 5:
		c.XRA(v)
	case 6:
		c.ORA(v)
	case 7:
		c.CMP(v)
	}
}

func (c *Cpu) execMvi(b bus.Bus, op byte) Cycles {
	dst := (op >> 3) & 0x7
	v := c.fetchByte(b)
	c.writeReg(b, dst, v)
	if dst == 6 {
		return 10
	}
	return 7
}

func (c *Cpu) execInr(b bus.Bus, op byte) Cycles {
	dst := (op >> 3) & 0x7
	c.writeReg(b, dst, c.INR(c.readReg(b, dst)))
	if dst == 6 {
		return 10
	}
	return 5
}

func (c *Cpu) execDcr(b bus.Bus, op byte) Cycles {
	dst := (op >> 3) & 0x7
	c.writeReg(b, dst, c.DCR(c.readReg(b, dst)))
	if dst == 6 {
		return 10
	}
	return 5
}

// readReg/writeReg decode the 3-bit register field shared by MOV, ALU A,r,
// MVI, and INR/DCR: 000=B 001=C 010=D 011=E 100=H 101=L 110=(HL) 111=A.
func (c *Cpu) readReg(b bus.Bus, idx byte) byte {
	switch idx {
	case 0:
		return c.B
	case 1:
		return c.C
	case 2:
		return c.D
	case 3:
		return c.E
	case 4:
		return c.H
	case 5:
		return c.L
	case 6:
		return b.Read(c.HL())
	default:
		return c.A
	}
}

func (c *Cpu) writeReg(b bus.Bus, idx byte, v byte) {
	switch idx {
	case 0:
		c.B = v
	case 1:
		c.C = v
	case 2:
		c.D = v
	case 3:
		c.E = v
	case 4:
		c.H = v
	case 5:
		c.L = v
	case 6:
		b.Write(c.HL(), v)
	default:
		c.A = v
	}
}

// rpGet/rpSet decode the register-pair field used by LXI/DAD/INX/DCX:
// 00=BC 01=DE 10=HL 11=SP.
func (c *Cpu) rpGet(idx byte) uint16 {
	switch idx {
	case 0:
		return c.BC()
	case 1:
		return c.DE()
	case 2:
		return c.HL()
	default:
		return c.SP
	}
}

func (c *Cpu) rpSet(idx byte, v uint16) {
	switch idx {
	case 0:
		c.SetBC(v)
	case 1:
		c.SetDE(v)
	case 2:
		c.SetHL(v)
	default:
		c.SP = v
	}
}

// rpGet2/rpSet2 decode the register-pair field used by PUSH/POP, which
// substitutes AF for SP at index 3.
func (c *Cpu) rpGet2(idx byte) uint16 {
	if idx == 3 {
		return c.AF()
	}
	return c.rpGet(idx)
}

func (c *Cpu) rpSet2(idx byte, v uint16) {
	if idx == 3 {
		c.SetAF(v)
		return
	}
	c.rpSet(idx, v)
}

// condTest decodes the 3-bit condition field: 000=NZ 001=Z 010=NC 011=C
// 100=PO 101=PE 110=P 111=M.
func (c *Cpu) condTest(idx byte) bool {
	switch idx {
	case 0:
		return !c.Flags.Z
	case 1:
		return c.Flags.Z
	case 2:
		return !c.Flags.C
	case 3:
		return c.Flags.C
	case 4:
		return !c.Flags.P
	case 5:
		return c.Flags.P
	case 6:
		return !c.Flags.S
	default:
		return c.Flags.S
	}
}
