package Go_Centroid

import (
	"math/bits"
)

// NewBitArray of size bits, all down.
func NewBitArray(size int) BitArray {
	return BitArray{bits: make([]uint, (size+bits.UintSize-1)/bits.UintSize), size: size}
}

// BitArray is a fixed size bitvector. The zero value has size 0.
type BitArray struct {
	bits []uint
	size int
}

func (u BitArray) Len() int {
	return u.size
}

func (u BitArray) Get(i int) bool {
	return (u.bits[i/bits.UintSize]>>(i%bits.UintSize))&1 == 1
}

func (u BitArray) Up(i int) {
	u.bits[i/bits.UintSize] |= 1 << (i % bits.UintSize)
}

func (u BitArray) Down(i int) {
	u.bits[i/bits.UintSize] &^= 1 << (i % bits.UintSize)
}

// Next set bit at or after i. Returns -1 when there's none.
func (u BitArray) Next(i int) int {
	if i < 0 {
		i = 0
	}
	w := i / bits.UintSize
	if w >= len(u.bits) {
		return -1
	}
	b := u.bits[w] & (^uint(0) << (i % bits.UintSize))
	for b == 0 {
		if w++; w == len(u.bits) {
			return -1
		}
		b = u.bits[w]
	}
	return w*bits.UintSize + bits.TrailingZeros(b)
}

// Prev set bit at or before i. Returns -1 when there's none.
func (u BitArray) Prev(i int) int {
	if i >= u.size {
		i = u.size - 1
	}
	if i < 0 {
		return -1
	}
	w := i / bits.UintSize
	b := u.bits[w] & (^uint(0) >> (bits.UintSize - 1 - i%bits.UintSize))
	for b == 0 {
		if w--; w < 0 {
			return -1
		}
		b = u.bits[w]
	}
	return w*bits.UintSize + bits.Len(b) - 1
}

// Count of bits that are up.
func (u BitArray) Count() (c int) {
	for _, b := range u.bits {
		c += bits.OnesCount(b)
	}
	return
}

// Clone returns a BitArray that doesn't share memory with u.
func (u BitArray) Clone() BitArray {
	return BitArray{bits: append([]uint(nil), u.bits...), size: u.size}
}
