// Package qrcode encodes byte-mode payloads into QR Code Model 2 symbols
// and rasterizes them to PNG.
//
// The pipeline is: choose the smallest version that fits the payload at
// the requested error correction level, build the byte-mode bit stream,
// pad it to the data-codeword count, split it into blocks and append
// Reed-Solomon error correction codewords computed in GF(2^8), interleave
// data and EC codewords, draw the function patterns and data bits onto
// the module matrix, try all eight mask patterns and keep the one with
// the lowest penalty score, then write the format and version info.
package qrcode

import (
	"errors"
	"fmt"
	"math"

	"github.com/F-O-T/libraries-sub003/qrcode/internal/bitx"
	"github.com/F-O-T/libraries-sub003/qrcode/internal/mathx"
	"github.com/F-O-T/libraries-sub003/qrcode/mask"
	"github.com/F-O-T/libraries-sub003/qrcode/qrcodeecc"
	"github.com/F-O-T/libraries-sub003/qrcode/qrsegment"
	"github.com/F-O-T/libraries-sub003/qrcode/version"
)

// ErrPayloadTooLarge is returned when the payload does not fit any QR
// Code version (1 through 40) at the requested error correction level.
var ErrPayloadTooLarge = errors.New("qrcode: payload too large")

// ErrInvalidArgument is returned for out-of-range configuration, such as
// an unrecognised error correction level.
var ErrInvalidArgument = errors.New("qrcode: invalid argument")

// Type aliases so callers don't need to import the sub-packages directly.
type (
	Mask = mask.Mask
	Ecc  = qrcodeecc.QrCodeEcc
	Ver  = version.Version
)

// Error correction levels, re-exported from qrcodeecc for callers that
// don't need the rest of that package's surface.
const (
	Low      = qrcodeecc.Low
	Medium   = qrcodeecc.Medium
	Quartile = qrcodeecc.Quartile
	High     = qrcodeecc.High
)

/*---- QRCode functionality ----*/

// QRCode is an immutable square grid of dark and light modules, encoding a
// byte-mode payload at a chosen version and error correction level.
type QRCode struct {
	version              Ver
	size                 int32
	errorcorrectionlevel Ecc
	mask                 Mask

	modules    []bool
	isfunction []bool
}

// Encode returns a QRCode representing the given binary payload at the
// given error correction level, automatically choosing the smallest
// version (1 to 40) that fits. The mask is chosen automatically to
// minimise the penalty score.
//
// Returns ErrPayloadTooLarge if the data does not fit any version at the
// requested level.
func Encode(data []byte, ecl Ecc) (*QRCode, error) {
	seg := qrsegment.MakeBytes(data)

	ver := version.Min
	var datausedbits uint
	for {
		datacapacitybits := getNumDataCodewords(ver, ecl) * 8
		dataused, ok := qrsegment.GetTotalBits(seg, ver.Value())

		if ok && dataused <= datacapacitybits {
			datausedbits = dataused
			break
		} else if ver.Value() >= version.Max.Value() {
			return nil, fmt.Errorf("%w: %d bytes exceeds capacity of version 40 at this level", ErrPayloadTooLarge, len(data))
		}
		ver = version.New(ver.Value() + 1)
	}

	bb := qrsegment.BitBuffer{}
	bb.AppendBits(qrsegment.ModeBits, 4)
	bb.AppendBits(uint32(seg.NumChars()), qrsegment.NumCharCountBits(ver.Value()))
	bb = append(bb, seg.Data()...)
	if uint(len(bb)) != datausedbits {
		panic("internal error: bit buffer length mismatch")
	}

	datacapacitybits := getNumDataCodewords(ver, ecl) * 8
	if uint(len(bb)) > datacapacitybits {
		panic("internal error: data exceeds capacity after selecting version")
	}
	numzerobits := mathx.MinUint(4, datacapacitybits-uint(len(bb)))
	bb.AppendBits(0, uint8(numzerobits))

	numzerobits = uint(mathx.WrappingNeg(len(bb)) & 7)
	bb.AppendBits(0, uint8(numzerobits))
	if len(bb)%8 != 0 {
		panic("internal error: bit buffer not byte aligned")
	}

	datacodewords := make([]uint8, len(bb)/8)
	for i, bit := range bb {
		datacodewords[i>>3] |= mathx.BoolToUint8(bit) << (7 - (i & 7))
	}
	for i, j := len(datacodewords), 0; uint(i) < datacapacitybits/8; i, j = i+1, j+1 {
		pad := []uint8{0xEC, 0x11}[j%2]
		datacodewords = append(datacodewords, pad)
	}

	return encodeCodewords(ver, ecl, datacodewords, nil), nil
}

// encodeCodewords creates a new QRCode with the given version number,
// error correction level, data codeword bytes, and mask number. If m is
// nil the mask is chosen automatically.
func encodeCodewords(ver Ver, ecl Ecc, datacodewords []uint8, m *Mask) *QRCode {
	size := uint(ver.Value())*4 + 17

	result := &QRCode{
		version:              ver,
		size:                 int32(size),
		mask:                 mask.New(0), // dummy value, overwritten below
		errorcorrectionlevel: ecl,
		modules:              make([]bool, size*size), // initially all light
		isfunction:           make([]bool, size*size),
	}

	result.drawFunctionPatterns()
	allcodewords := result.addEccAndInterleave(datacodewords)
	result.drawCodewords(allcodewords)

	if m == nil {
		minpenalty := int32(math.MaxInt32)
		var best Mask
		for i, maxv := uint8(0), uint8(8); i < maxv; i++ {
			candidate := mask.New(i)
			result.applyMask(candidate)
			result.drawFormatBits(candidate)
			penalty := result.getPenaltyScore()
			if penalty < minpenalty {
				best = candidate
				minpenalty = penalty
			}
			result.applyMask(candidate) // undo, since XOR is its own inverse
		}
		m = &best
	}
	chosen := *m
	result.mask = chosen
	result.applyMask(chosen)
	result.drawFormatBits(chosen)

	result.isfunction = nil

	return result
}

/*---- Public accessors ----*/

// Version returns this QR Code's version, in the range [1, 40].
func (q *QRCode) Version() Ver { return q.version }

// Size returns this QR Code's size, in modules, in the range [21, 177].
func (q *QRCode) Size() int32 { return q.size }

// ErrorCorrectionLevel returns this QR Code's error correction level.
func (q *QRCode) ErrorCorrectionLevel() Ecc { return q.errorcorrectionlevel }

// Mask returns this QR Code's chosen mask pattern, in the range [0, 7].
func (q *QRCode) Mask() Mask { return q.mask }

// GetModule returns the color of the module at the given coordinates,
// which is false for light or true for dark. Out-of-bounds coordinates
// return false.
func (q *QRCode) GetModule(x, y int32) bool {
	return 0 <= x && x < q.size && 0 <= y && y < q.size && q.module(x, y)
}

func (q *QRCode) module(x, y int32) bool {
	return q.modules[uint(y*q.size+x)]
}

func (q *QRCode) moduleSet(x, y int32, v bool) {
	q.modules[uint(y*q.size+x)] = v
}

/*---- Drawing function modules ----*/

func (q *QRCode) drawFunctionPatterns() {
	size := q.size
	for i := int32(0); i < size; i++ {
		q.setFunctionModule(6, i, i%2 == 0)
		q.setFunctionModule(i, 6, i%2 == 0)
	}

	q.drawFinderPattern(3, 3)
	q.drawFinderPattern(q.size-4, 3)
	q.drawFinderPattern(3, q.size-4)

	alignpatpos := q.getAlignmentPatternPositions()
	numalign := len(alignpatpos)
	for i := 0; i < numalign; i++ {
		for j := 0; j < numalign; j++ {
			if !(i == 0 && j == 0 || i == 0 && j == numalign-1 || i == numalign-1 && j == 0) {
				q.drawAlignmentPattern(alignpatpos[i], alignpatpos[j])
			}
		}
	}

	q.drawFormatBits(mask.New(0)) // dummy mask, overwritten later
	q.drawVersion()
}

func (q *QRCode) drawFormatBits(m Mask) {
	var bits uint32
	{
		data := uint32(q.errorcorrectionlevel.FormatBits())<<3 | uint32(m.Value())
		rem := data
		for i := 0; i < 10; i++ {
			rem = (rem << 1) ^ ((rem >> 9) * 0x537)
		}
		bits = (data<<10 | rem) ^ 0x5412
	}
	if bits>>15 != 0 {
		panic("internal error: format bits overflow")
	}

	for i := int32(0); i < 6; i++ {
		q.setFunctionModule(8, i, bitx.GetBit(bits, i))
	}
	q.setFunctionModule(8, 7, bitx.GetBit(bits, 6))
	q.setFunctionModule(8, 8, bitx.GetBit(bits, 7))
	q.setFunctionModule(7, 8, bitx.GetBit(bits, 8))
	for i := int32(9); i < 15; i++ {
		q.setFunctionModule(14-i, 8, bitx.GetBit(bits, i))
	}

	size := q.size
	for i := int32(0); i < 8; i++ {
		q.setFunctionModule(size-1-i, 8, bitx.GetBit(bits, i))
	}
	for i := int32(8); i < 15; i++ {
		q.setFunctionModule(8, size-15+i, bitx.GetBit(bits, i))
	}
	q.setFunctionModule(8, size-8, true) // always dark
}

func (q *QRCode) drawVersion() {
	if q.version.Value() < 7 {
		return
	}

	var bits uint32
	{
		data := uint32(q.version.Value())
		rem := data
		for i := 0; i < 12; i++ {
			rem = (rem << 1) ^ ((rem >> 11) * 0x1F25)
		}
		bits = data<<12 | rem
	}
	if bits>>18 != 0 {
		panic("internal error: version bits overflow")
	}

	for i := int32(0); i < 18; i++ {
		bit := bitx.GetBit(bits, i)
		a := q.size - 11 + i%3
		b := i / 3
		q.setFunctionModule(a, b, bit)
		q.setFunctionModule(b, a, bit)
	}
}

func (q *QRCode) drawFinderPattern(x, y int32) {
	for dy := int32(-4); dy <= 4; dy++ {
		for dx := int32(-4); dx <= 4; dx++ {
			xx := x + dx
			yy := y + dy
			if 0 <= xx && xx < q.size && 0 <= yy && yy < q.size {
				dist := mathx.MaxInt32(mathx.AbsInt32(dx), mathx.AbsInt32(dy))
				q.setFunctionModule(xx, yy, dist != 2 && dist != 4)
			}
		}
	}
}

func (q *QRCode) drawAlignmentPattern(x, y int32) {
	for dy := int32(-2); dy <= 2; dy++ {
		for dx := int32(-2); dx <= 2; dx++ {
			q.setFunctionModule(x+dx, y+dy, mathx.MaxInt32(mathx.AbsInt32(dx), mathx.AbsInt32(dy)) != 1)
		}
	}
}

func (q *QRCode) setFunctionModule(x, y int32, isdark bool) {
	q.moduleSet(x, y, isdark)
	q.isfunction[(y*q.size + x)] = true
}

/*---- Codewords and masking ----*/

func (q *QRCode) addEccAndInterleave(data []uint8) []uint8 {
	ver := q.version
	ecl := q.errorcorrectionlevel
	if len(data) != int(getNumDataCodewords(ver, ecl)) {
		panic("internal error: data codeword count mismatch")
	}

	numblocks := tableGet(numErrorCorrectionBlocks, ver, ecl)
	blockecclen := tableGet(eccCodewordsPerBlock, ver, ecl)
	rawcodewords := getNumRawDataModules(ver) / 8
	numshortblocks := numblocks - (rawcodewords % numblocks)
	shortblocklen := rawcodewords / numblocks

	blocks := make([][]uint8, 0, numblocks)
	rsdiv := reedSolomonComputeDivisor(blockecclen)

	var k uint
	for i, maxv := uint(0), numblocks; i < maxv; i++ {
		datlen := shortblocklen - blockecclen + uint(mathx.BoolToUint8(i >= numshortblocks))
		dat := make([]uint8, datlen)
		_ = copy(dat, data[k:k+datlen])
		k += datlen
		ecc := reedSolomonComputeRemainder(dat, rsdiv)

		if i < numshortblocks {
			dat = append(dat, 0)
		}
		dat = append(dat, ecc...)
		blocks = append(blocks, dat)
	}

	result := make([]uint8, 0, rawcodewords)
	for i, maxv := uint(0), shortblocklen; i <= maxv; i++ {
		for j, block := range blocks {
			if i != shortblocklen-blockecclen || uint(j) >= numshortblocks {
				result = append(result, block[i])
			}
		}
	}

	return result
}

func (q *QRCode) drawCodewords(data []uint8) {
	if uint(len(data)) != getNumRawDataModules(q.version)/8 {
		panic("internal error: raw codeword count mismatch")
	}

	var i uint
	right := q.size - 1
	for right >= 1 {
		if right == 6 {
			right = 5
		}
		for vert := int32(0); vert < q.size; vert++ {
			for j := int32(0); j < 2; j++ {
				x := right - j
				upward := (right+1)&2 == 0
				var y int32
				if upward {
					y = q.size - 1 - vert
				} else {
					y = vert
				}
				if !q.isfunction[(y*q.size+x)] && i < uint(len(data)*8) {
					q.moduleSet(x, y, bitx.GetBit(uint32(data[i>>3]), int32(7-(i&7))))
					i += 1
				}
			}
		}
		right -= 2
	}

	if i != uint(len(data)*8) {
		panic("internal error: not all data bits were placed")
	}
}

func (q *QRCode) applyMask(m Mask) {
	for y := int32(0); y < q.size; y++ {
		for x := int32(0); x < q.size; x++ {
			var invert bool
			switch m.Value() {
			case 0:
				invert = (x+y)%2 == 0
			case 1:
				invert = y%2 == 0
			case 2:
				invert = x%3 == 0
			case 3:
				invert = (x+y)%3 == 0
			case 4:
				invert = (x/3+y/2)%2 == 0
			case 5:
				invert = x*y%2+x*y%3 == 0
			case 6:
				invert = (x*y%2+x*y%3)%2 == 0
			case 7:
				invert = ((x+y)%2+x*y%3)%2 == 0
			default:
				panic("unreachable: mask value out of range")
			}
			newModule := q.module(x, y) != (invert && !q.isfunction[(y*q.size+x)])
			q.moduleSet(x, y, newModule)
		}
	}
}

// getPenaltyScore computes the total penalty (R1 through R4) for the
// module grid in its current state. Used by the automatic mask choice to
// find the mask pattern that yields the lowest score.
func (q *QRCode) getPenaltyScore() int32 {
	var result int32
	size := q.size

	for y := int32(0); y < size; y++ {
		var runcolor bool
		var runx int32
		runhistory := newFinderPenalty(size)
		for x := int32(0); x < size; x++ {
			if q.module(x, y) == runcolor {
				runx += 1
				if runx == 5 {
					result += penaltyN1
				} else if runx > 5 {
					result += 1
				}
			} else {
				runhistory.addHistory(runx)
				if !runcolor {
					result += runhistory.countPatterns() * penaltyN3
				}
				runcolor = q.module(x, y)
				runx = 1
			}
		}
		result += runhistory.terminateAndCount(runcolor, runx) * penaltyN3
	}

	for x := int32(0); x < size; x++ {
		var runcolor bool
		var runy int32
		runhistory := newFinderPenalty(size)
		for y := int32(0); y < size; y++ {
			if q.module(x, y) == runcolor {
				runy += 1
				if runy == 5 {
					result += penaltyN1
				} else if runy > 5 {
					result += 1
				}
			} else {
				runhistory.addHistory(runy)
				if !runcolor {
					result += runhistory.countPatterns() * penaltyN3
				}
				runcolor = q.module(x, y)
				runy = 1
			}
		}
		result += runhistory.terminateAndCount(runcolor, runy) * penaltyN3
	}

	for y := int32(0); y < size-1; y++ {
		for x := int32(0); x < size-1; x++ {
			color := q.module(x, y)
			if color == q.module(x+1, y) &&
				color == q.module(x, y+1) &&
				color == q.module(x+1, y+1) {
				result += penaltyN2
			}
		}
	}

	var dark int32
	for _, mod := range q.modules {
		dark += mathx.BoolToInt32(mod)
	}
	total := size * size
	k := (mathx.AbsInt32((dark*20-total*10))+total-1)/total - 1
	result += k * penaltyN4

	return result
}

/*---- Private helper functions ----*/

// getAlignmentPatternPositions returns an ascending list of positions of
// alignment patterns for this version number. Each position is in the
// range [0,177), and is used on both the x and y axes.
func (q *QRCode) getAlignmentPatternPositions() []int32 {
	ver := q.version.Value()
	if ver == 1 {
		return []int32{}
	}
	numalign := int32(ver)/7 + 2
	var step int32
	if ver == 32 {
		step = 26
	} else {
		step = (int32(ver)*4 + numalign*2 + 1) / (numalign*2 - 2) * 2
	}
	result := make([]int32, numalign)
	for i := int32(0); i < numalign-1; i++ {
		result[i] = q.size - 7 - i*step
	}
	result[numalign-1] = 6

	inverted := make([]int32, numalign)
	for i, val := range result {
		inverted[numalign-1-int32(i)] = val
	}

	return inverted
}

// getNumRawDataModules returns the number of data bits that can be stored
// in a QR Code of the given version number, after all function modules
// are excluded. This includes remainder bits, so it might not be a
// multiple of 8. The result is in the range [208, 29648].
func getNumRawDataModules(v Ver) uint {
	ver := uint(v.Value())
	result := (16*ver+128)*ver + 64
	if ver >= 2 {
		numalign := ver/7 + 2
		result -= (25*numalign-10)*numalign - 55
		if ver >= 7 {
			result -= 36
		}
	}
	if result < 208 || result > 29648 {
		panic("internal error: raw data module count out of range")
	}

	return result
}

// getNumDataCodewords returns the number of 8-bit data (not EC) codewords
// contained in any QR Code of the given version number and error
// correction level, with remainder bits discarded.
func getNumDataCodewords(ver Ver, ecl Ecc) uint {
	return getNumRawDataModules(ver)/8 - tableGet(eccCodewordsPerBlock, ver, ecl)*tableGet(numErrorCorrectionBlocks, ver, ecl)
}

func tableGet(table [4][41]int8, ver Ver, ecl Ecc) uint {
	return uint(table[ecl.Ordinal()][uint(ver.Value())])
}

// reedSolomonComputeDivisor returns a Reed-Solomon ECC generator
// polynomial for the given degree, as the product of (x - r^i) for
// i = 0..degree-1 where r = 0x02, a generator element of GF(2^8/0x11D).
func reedSolomonComputeDivisor(degree uint) []uint8 {
	if degree < 1 || degree > 255 {
		panic("degree out of range")
	}

	result := make([]uint8, degree-1)
	result = append(result, 1) // start off with the monomial x^0

	root := uint8(1)
	for i := uint(0); i < degree; i++ {
		for j := uint(0); j < degree; j++ {
			result[j] = reedSolomonMultiply(result[j], root)
			if j+1 < uint(len(result)) {
				result[j] ^= result[j+1]
			}
		}
		root = reedSolomonMultiply(root, 0x02)
	}
	return result
}

// reedSolomonComputeRemainder returns the Reed-Solomon error correction
// codeword for the given data and divisor polynomials, via polynomial
// long division.
func reedSolomonComputeRemainder(data []uint8, divisor []uint8) []uint8 {
	result := make([]uint8, len(divisor))
	for _, b := range data {
		var pop uint8
		pop, result = result[0], result[1:]
		factor := b ^ pop
		result = append(result, 0)

		iterLen := mathx.MinUint(uint(len(result)), uint(len(divisor)))
		for i := uint(0); i < iterLen; i++ {
			y := divisor[i]
			result[i] ^= reedSolomonMultiply(y, factor)
		}
	}

	return result
}

// reedSolomonMultiply returns the product of the two given field elements
// modulo GF(2^8/0x11D), via Russian peasant multiplication.
func reedSolomonMultiply(x, y uint8) uint8 {
	var z uint8
	for i := 7; i > -1; i-- {
		z = (z << 1) ^ ((z >> 7) * 0x1D)
		z ^= ((y >> i) & 1) * x
	}

	return z
}

/*---- Helper struct for getPenaltyScore() ----*/

type finderPenalty struct {
	qrSize     int32
	runHistory [7]int32
}

func newFinderPenalty(size int32) *finderPenalty {
	return &finderPenalty{qrSize: size}
}

// addHistory pushes the given value to the front and drops the last value.
func (p *finderPenalty) addHistory(currentrunlength int32) {
	if p.runHistory[0] == 0 {
		currentrunlength += p.qrSize // add light border to initial run
	}
	rh := &p.runHistory
	for i := len(rh) - 1 - 1; i > -1; i-- {
		p.runHistory[i+1] = rh[i]
	}
	rh[0] = currentrunlength
}

// countPatterns can only be called immediately after a light run is
// added, and returns either 0, 1, or 2.
func (p *finderPenalty) countPatterns() int32 {
	rh := p.runHistory
	n := rh[1]
	if n > p.qrSize*3 {
		panic("internal error: run length exceeds bound")
	}
	core := n > 0 && rh[2] == n && rh[3] == n*3 && rh[4] == n && rh[5] == n
	return mathx.BoolToInt32(core && rh[0] >= n*4 && rh[6] >= n) + mathx.BoolToInt32(core && rh[6] >= n*4 && rh[0] >= n)
}

// terminateAndCount must be called at the end of a line (row or column)
// of modules.
func (p *finderPenalty) terminateAndCount(currentruncolor bool, currentrunlength int32) int32 {
	if currentruncolor {
		p.addHistory(currentrunlength)
		currentrunlength = 0
	}
	currentrunlength += p.qrSize // add light border to final run
	p.addHistory(currentrunlength)
	return p.countPatterns()
}

/*---- Constants and tables ----*/

const (
	penaltyN1 int32 = 3
	penaltyN2 int32 = 3
	penaltyN3 int32 = 40
	penaltyN4 int32 = 10
)

var (
	// eccCodewordsPerBlock is the EC table from spec.md section 3: for
	// each (version, level) it gives the number of error correction
	// codewords per block. Index 0 of each row is unused padding.
	eccCodewordsPerBlock = [4][41]int8{
		{-1, 7, 10, 15, 20, 26, 18, 20, 24, 30, 18, 20, 24, 26, 30, 22, 24, 28, 30, 28, 28, 28, 28, 30, 30, 26, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30},  // Low
		{-1, 10, 16, 26, 18, 24, 16, 18, 22, 22, 26, 30, 22, 22, 24, 24, 28, 28, 26, 26, 26, 26, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28, 28}, // Medium
		{-1, 13, 22, 18, 26, 18, 24, 18, 22, 20, 24, 28, 26, 24, 20, 30, 24, 28, 28, 26, 30, 28, 30, 30, 30, 30, 28, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}, // Quartile
		{-1, 17, 28, 22, 16, 22, 28, 26, 26, 24, 28, 24, 28, 22, 24, 24, 30, 28, 28, 26, 28, 30, 24, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30, 30}, // High
	}

	// numErrorCorrectionBlocks is the EC table from spec.md section 3: for
	// each (version, level) it gives the number of error correction blocks.
	numErrorCorrectionBlocks = [4][41]int8{
		{-1, 1, 1, 1, 1, 1, 2, 2, 2, 2, 4, 4, 4, 4, 4, 6, 6, 6, 6, 7, 8, 8, 9, 9, 10, 12, 12, 12, 13, 14, 15, 16, 17, 18, 19, 19, 20, 21, 22, 24, 25},              // Low
		{-1, 1, 1, 1, 2, 2, 4, 4, 4, 5, 5, 5, 8, 9, 9, 10, 10, 11, 13, 14, 16, 17, 17, 18, 20, 21, 23, 25, 26, 28, 29, 31, 33, 35, 37, 38, 40, 43, 45, 47, 49},     // Medium
		{-1, 1, 1, 2, 2, 4, 4, 6, 6, 8, 8, 8, 10, 12, 16, 12, 17, 16, 18, 21, 20, 23, 23, 25, 27, 29, 34, 34, 35, 38, 40, 43, 45, 48, 51, 53, 56, 59, 62, 65, 68},  // Quartile
		{-1, 1, 1, 2, 4, 4, 4, 5, 6, 8, 8, 11, 11, 16, 16, 18, 16, 19, 21, 25, 25, 25, 34, 30, 32, 35, 37, 40, 42, 45, 48, 51, 54, 57, 60, 63, 66, 70, 74, 77, 81}, // High
	}
)
