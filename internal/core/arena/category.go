package arena

// Category selects which pool an allocation is carved from. Pools are
// independent: sizing, locking, and statistics are all per category.
type Category int

const (
	General Category = iota // engine-wide allocations, component pools
	Graphics
	Audio
	Physics
	Script
	Temp // scratch allocations, reclaimed in bulk via Reset

	numCategories
)

func (c Category) String() string {
	switch c {
	case General:
		return "general"
	case Graphics:
		return "graphics"
	case Audio:
		return "audio"
	case Physics:
		return "physics"
	case Script:
		return "script"
	case Temp:
		return "temp"
	}
	return "unknown"
}

// Default pool sizes in bytes.
const (
	DefaultGeneralSize  = 64 << 20
	DefaultTempSize     = 32 << 20
	DefaultCategorySize = 8 << 20
)

// Sizes configures the byte capacity of each category pool. Zero or negative
// values fall back to the defaults above.
type Sizes struct {
	General  int
	Graphics int
	Audio    int
	Physics  int
	Script   int
	Temp     int
}

func DefaultSizes() Sizes {
	return Sizes{
		General:  DefaultGeneralSize,
		Graphics: DefaultCategorySize,
		Audio:    DefaultCategorySize,
		Physics:  DefaultCategorySize,
		Script:   DefaultCategorySize,
		Temp:     DefaultTempSize,
	}
}

func (s Sizes) forCategory(c Category) int {
	var v, def int
	switch c {
	case General:
		v, def = s.General, DefaultGeneralSize
	case Graphics:
		v, def = s.Graphics, DefaultCategorySize
	case Audio:
		v, def = s.Audio, DefaultCategorySize
	case Physics:
		v, def = s.Physics, DefaultCategorySize
	case Script:
		v, def = s.Script, DefaultCategorySize
	case Temp:
		v, def = s.Temp, DefaultTempSize
	}
	if v <= 0 {
		return def
	}
	return v
}
