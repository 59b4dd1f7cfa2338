// Copyright (c) 2021 Silvano DAL ZILIO
//
// MIT License

package aadd

import (
	"fmt"
	"math/big"
)

// cache is a lossy, direct-mapped table used to memoize the results of Apply,
// ITE and the unary operations. An entry is overwritten when another key hashes
// to the same slot. Results are never invalidated, since nodes are immutable
// and their ids are never reused, but the table is cleared on Reset.
type cache[V Leaf[V]] struct {
	table []cacheData[V]
	hit   int
	miss  int
}

// cacheData is a unit of information stored in a cache; res is nil in empty
// slots.
type cacheData[V Leaf[V]] struct {
	a, b uint64
	op   int
	res  *DD[V]
}

func (c *cache[V]) cacheinit(size int) {
	c.table = make([]cacheData[V], primeGte(size))
}

// slot returns the position of key (a, b, op) in the table. It combines the
// node ids and the operation code with the Cantor pairing function, taken
// modulo the (prime) size of the table.
func (c *cache[V]) slot(a, b uint64, op int) int {
	n := uint64(len(c.table))
	return int(pair(uint64(op)%n, pair(a%n, b%n, n), n))
}

func pair(a, b, n uint64) uint64 {
	return ((a+b)*(a+b+1)/2 + a) % n
}

// primeGte returns the smallest prime greater or equal to size, and at least 3.
func primeGte(size int) int {
	if size < 3 {
		return 3
	}
	for n := size | 1; ; n += 2 {
		// ProbablyPrime is exact for inputs less than 2⁶⁴
		if big.NewInt(int64(n)).ProbablyPrime(0) {
			return n
		}
	}
}

func (c *cache[V]) cachereset() {
	clear(c.table)
	c.hit, c.miss = 0, 0
}

func (c *cache[V]) match(a, b uint64, op int) *DD[V] {
	entry := c.table[c.slot(a, b, op)]
	if entry.res != nil && entry.a == a && entry.b == b && entry.op == op {
		c.hit++
		return entry.res
	}
	c.miss++
	return nil
}

func (c *cache[V]) set(a, b uint64, op int, res *DD[V]) *DD[V] {
	c.table[c.slot(a, b, op)] = cacheData[V]{a: a, b: b, op: op, res: res}
	return res
}

// cacheStat stores information about the use of the operation caches.
type cacheStat struct {
	size     int // number of entries of each cache
	bddHit   int
	bddMiss  int
	aaddHit  int
	aaddMiss int
}

func (c cacheStat) String() string {
	res := fmt.Sprintf("Cache size:     %d\n", c.size)
	res += fmt.Sprintf("BDD Hits:       %d\n", c.bddHit)
	res += fmt.Sprintf("BDD Miss:       %d\n", c.bddMiss)
	res += fmt.Sprintf("AADD Hits:      %d\n", c.aaddHit)
	res += fmt.Sprintf("AADD Miss:      %d", c.aaddMiss)
	return res
}
