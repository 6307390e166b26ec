package scroll

// FixedHeightIndex maps offsets to rows of equal height.
type FixedHeightIndex struct {
	Height int
	Count  func() int
}

// TotalHeight returns the total height for all items.
func (f FixedHeightIndex) TotalHeight() int {
	if f.Height <= 0 {
		return 0
	}
	count := f.count()
	if count < 0 {
		count = 0
	}
	return f.Height * count
}

// IndexForOffset returns the item index for a given offset.
func (f FixedHeightIndex) IndexForOffset(offset int) int {
	if f.Height <= 0 || offset <= 0 {
		return 0
	}
	index := offset / f.Height
	maxIndex := f.count() - 1
	if maxIndex < 0 {
		maxIndex = 0
	}
	if index > maxIndex {
		index = maxIndex
	}
	return index
}

// OffsetForIndex returns the offset for the given item index.
func (f FixedHeightIndex) OffsetForIndex(index int) int {
	if f.Height <= 0 || index <= 0 {
		return 0
	}
	count := f.count()
	if count <= 0 {
		return 0
	}
	if index >= count {
		index = count - 1
	}
	return index * f.Height
}

// TriggerPoint returns the progress, in [0, 1], at which item index becomes
// active: its start plus lead sectors into its own sector.
func (f FixedHeightIndex) TriggerPoint(index int, lead float64) float64 {
	count := f.count()
	if count <= 0 {
		return 0
	}
	if index < 0 {
		index = 0
	}
	if index >= count {
		index = count - 1
	}
	return clampUnit((float64(index) + lead) / float64(count))
}

func (f FixedHeightIndex) count() int {
	if f.Count == nil {
		return 0
	}
	return f.Count()
}
