package cpu

// This file implements the 8080 ALU and flag semantics from spec §4.2.3.
// Every operation works in a wider width than 8 bits, then narrows, so the
// carry-out and half-carry-out are observed directly rather than
// reconstructed after the fact.

// add computes A+v(+carryIn) and sets C, AC, Z, S, P from the result,
// returning the narrowed 8-bit sum. Used by both ADD and ADC.
func (c *Cpu) add(v byte, carryIn byte) byte {
	sum := uint16(c.A) + uint16(v) + uint16(carryIn)
	nibble := (c.A & 0x0F) + (v & 0x0F) + carryIn
	c.Flags.C = sum&0x100 != 0
	c.Flags.AC = nibble&0x10 != 0
	result := byte(sum)
	c.Flags.setZSP(result)
	return result
}

// ADD executes ADD A,v.
func (c *Cpu) ADD(v byte) { c.A = c.add(v, 0) }

// ADC executes ADC A,v.
func (c *Cpu) ADC(v byte) { c.A = c.add(v, b2byte(c.Flags.C)) }

// sub computes A-v-borrowIn and sets C, AC, Z, S, P from the result,
// returning the narrowed 8-bit difference. Used by both SUB/CMP and SBB.
func (c *Cpu) sub(v byte, borrowIn byte) byte {
	diff := int16(c.A) - int16(v) - int16(borrowIn)
	c.Flags.C = diff < 0
	c.Flags.AC = int16(c.A&0x0F)-int16(v&0x0F)-int16(borrowIn) < 0
	result := byte(diff)
	c.Flags.setZSP(result)
	return result
}

// SUB executes SUB A,v.
func (c *Cpu) SUB(v byte) { c.A = c.sub(v, 0) }

// SBB executes SBB A,v.
func (c *Cpu) SBB(v byte) { c.A = c.sub(v, b2byte(c.Flags.C)) }

// CMP executes CMP A,v: computes SUB semantics for flags only, A unchanged.
func (c *Cpu) CMP(v byte) { c.sub(v, 0) }

// ANA executes ANA A,v. The 8080 unconditionally sets AC on logical AND,
// regardless of the operand bits.
func (c *Cpu) ANA(v byte) {
	c.A &= v
	c.Flags.C = false
	c.Flags.AC = true
	c.Flags.setZSP(c.A)
}

// ORA executes ORA A,v.
func (c *Cpu) ORA(v byte) {
	c.A |= v
	c.Flags.C = false
	c.Flags.AC = false
	c.Flags.setZSP(c.A)
}

// XRA executes XRA A,v.
func (c *Cpu) XRA(v byte) {
	c.A ^= v
	c.Flags.C = false
	c.Flags.AC = false
	c.Flags.setZSP(c.A)
}

// INR increments v by one, setting Z, S, P, AC from the result; C is
// unaffected. Returns the incremented value for the caller to store back.
func (c *Cpu) INR(v byte) byte {
	c.Flags.AC = v&0x0F+1 > 0x0F
	v++
	c.Flags.setZSP(v)
	return v
}

// DCR decrements v by one, setting Z, S, P, AC from the result; C is
// unaffected. Returns the decremented value for the caller to store back.
func (c *Cpu) DCR(v byte) byte {
	c.Flags.AC = v&0x0F == 0
	v--
	c.Flags.setZSP(v)
	return v
}

// DAD adds rp to HL as a 17-bit sum; only C is affected, Z/S/P/AC are
// untouched.
func (c *Cpu) DAD(rp uint16) {
	sum := uint32(c.HL()) + uint32(rp)
	c.Flags.C = sum&0x10000 != 0
	c.SetHL(uint16(sum))
}

// rlca rotates A left one position, the bit shifted out of bit 7 becomes
// both the new bit 0 and the new Carry.
func (c *Cpu) rlca() {
	carry := c.A&0x80 != 0
	c.A = c.A<<1 | b2byte(carry)
	c.Flags.C = carry
}

// rrca rotates A right one position, the bit shifted out of bit 0 becomes
// both the new bit 7 and the new Carry.
func (c *Cpu) rrca() {
	carry := c.A&0x01 != 0
	c.A = c.A>>1 | (b2byte(carry) << 7)
	c.Flags.C = carry
}

// rla rotates A and Carry together left by one: the old Carry becomes the
// new bit 0, and the old bit 7 becomes the new Carry.
func (c *Cpu) rla() {
	carryIn := b2byte(c.Flags.C)
	c.Flags.C = c.A&0x80 != 0
	c.A = c.A<<1 | carryIn
}

// rra rotates A and Carry together right by one: the old Carry becomes the
// new bit 7, and the old bit 0 becomes the new Carry.
func (c *Cpu) rra() {
	carryIn := b2byte(c.Flags.C)
	c.Flags.C = c.A&0x01 != 0
	c.A = c.A>>1 | (carryIn << 7)
}

// cma complements A. AC is set per the observed 8080 behavior (spec
// §4.2.3); other flags are unaffected.
func (c *Cpu) cma() {
	c.A = ^c.A
	c.Flags.AC = true
}

func (c *Cpu) stc() { c.Flags.C = true }
func (c *Cpu) cmc() { c.Flags.C = !c.Flags.C }

// daa decimal-adjusts A per spec §9: the correction includes 0x06 if the
// low nibble exceeds 9 or AC is set, and 0x60 if the original A exceeds
// 0x99 or C is set (which also sets C); both parts are decided from the
// unadjusted A and added in one step. Z, S, P are recomputed from the final
// value, AC from the low-nibble add.
func (c *Cpu) daa() {
	correction := byte(0)
	carry := c.Flags.C

	lowNibble := c.A & 0x0F
	if lowNibble > 9 || c.Flags.AC {
		correction |= 0x06
	}

	if c.A > 0x99 || c.Flags.C {
		correction |= 0x60
		carry = true
	}

	sum := uint16(c.A) + uint16(correction)
	c.Flags.AC = (c.A&0x0F)+(correction&0x0F) > 0x0F
	c.A = byte(sum)
	c.Flags.C = carry
	c.Flags.setZSP(c.A)
}

func b2byte(b bool) byte {
	if b {
		return 1
	}
	return 0
}
