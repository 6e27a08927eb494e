package cart

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func line(itemID, qty int, price int64) Line {
	return Line{ItemID: itemID, Name: "item", UnitPrice: price, Quantity: qty}
}

func TestLines_AddMergesSameItem(t *testing.T) {
	var ls Lines

	clamped := ls.Add(line(1, 2, 1000))
	assert.False(t, clamped)
	clamped = ls.Add(line(1, 3, 1000))
	assert.False(t, clamped)

	require.Len(t, ls, 1)
	assert.Equal(t, 5, ls[0].Quantity)
}

func TestLines_AddKeepsDistinctItemsApart(t *testing.T) {
	var ls Lines

	ls.Add(line(1, 1, 1000))
	ls.Add(line(2, 1, 2000))

	assert.Len(t, ls, 2)
}

func TestLines_AddClampsAtMaximum(t *testing.T) {
	var ls Lines

	ls.Add(line(1, 98, 1000))
	clamped := ls.Add(line(1, 5, 1000))

	assert.True(t, clamped)
	got, ok := ls.Find(1)
	require.True(t, ok)
	assert.Equal(t, MaxQuantity, got.Quantity)
}

func TestLines_AddClampsOversizedFirstAdd(t *testing.T) {
	var ls Lines

	clamped := ls.Add(line(1, 500, 1000))

	assert.True(t, clamped)
	assert.Equal(t, MaxQuantity, ls[0].Quantity)
}

func TestLines_AddTreatsZeroQuantityAsOne(t *testing.T) {
	var ls Lines

	ls.Add(line(1, 0, 1000))

	assert.Equal(t, 1, ls[0].Quantity)
}

func TestLines_SetQuantity(t *testing.T) {
	var ls Lines
	ls.Add(line(1, 2, 1000))

	found, clamped := ls.SetQuantity(1, 7)
	assert.True(t, found)
	assert.False(t, clamped)
	assert.Equal(t, 7, ls[0].Quantity)
}

func TestLines_SetQuantityZeroRemovesLine(t *testing.T) {
	var ls Lines
	ls.Add(line(1, 2, 1000))

	found, clamped := ls.SetQuantity(1, 0)
	assert.True(t, found)
	assert.False(t, clamped)
	assert.Empty(t, ls)
}

func TestLines_SetQuantityClamps(t *testing.T) {
	var ls Lines
	ls.Add(line(1, 2, 1000))

	found, clamped := ls.SetQuantity(1, 150)
	assert.True(t, found)
	assert.True(t, clamped)
	assert.Equal(t, MaxQuantity, ls[0].Quantity)
}

func TestLines_SetQuantityUnknownItem(t *testing.T) {
	var ls Lines

	found, _ := ls.SetQuantity(42, 3)
	assert.False(t, found)
}

func TestLines_Remove(t *testing.T) {
	var ls Lines
	ls.Add(line(1, 1, 1000))
	ls.Add(line(2, 1, 2000))

	assert.True(t, ls.Remove(1))
	assert.False(t, ls.Remove(1))
	require.Len(t, ls, 1)
	assert.Equal(t, 2, ls[0].ItemID)
}

func TestLines_TotalAndCount(t *testing.T) {
	var ls Lines
	ls.Add(line(1, 2, 1000)) // 20.00
	ls.Add(line(2, 1, 500))  // 5.00

	assert.Equal(t, int64(2500), ls.Total())
	assert.Equal(t, 3, ls.Count())
}

func TestLines_CloneIsIndependent(t *testing.T) {
	var ls Lines
	ls.Add(line(1, 2, 1000))

	snapshot := ls.Clone()
	ls.SetQuantity(1, 9)

	assert.Equal(t, 2, snapshot[0].Quantity)
	assert.Equal(t, 9, ls[0].Quantity)
}
