package types

// Channel is a concrete visual encoding channel name.
type Channel string

// Concrete channels in encoding pane display order.
const (
	ChannelX       Channel = "x"
	ChannelY       Channel = "y"
	ChannelX2      Channel = "x2"
	ChannelY2      Channel = "y2"
	ChannelRow     Channel = "row"
	ChannelColumn  Channel = "column"
	ChannelSize    Channel = "size"
	ChannelColor   Channel = "color"
	ChannelOpacity Channel = "opacity"
	ChannelShape   Channel = "shape"
	ChannelDetail  Channel = "detail"
	ChannelText    Channel = "text"
	ChannelTooltip Channel = "tooltip"
	ChannelOrder   Channel = "order"
)

// Channels lists the concrete channel vocabulary in display order.
var Channels = []Channel{
	ChannelX, ChannelY, ChannelX2, ChannelY2,
	ChannelRow, ChannelColumn,
	ChannelSize, ChannelColor, ChannelOpacity, ChannelShape,
	ChannelDetail, ChannelText, ChannelTooltip, ChannelOrder,
}

// channelRank maps each known channel to its display position.
var channelRank = func() map[Channel]int {
	m := make(map[Channel]int, len(Channels))
	for i, c := range Channels {
		m[c] = i
	}
	return m
}()

// Known reports whether c belongs to the concrete channel vocabulary.
// Unknown channels are still carried through conversions unchanged.
func (c Channel) Known() bool {
	_, ok := channelRank[c]
	return ok
}

// Wildcard is the short wildcard marker. It stands for "any channel",
// "any field", "any type" or "any mark" depending on where it appears.
const Wildcard = "?"

// ShelfMark is the mark type of the shelf: a concrete mark or Wildcard.
type ShelfMark string

// Mark types.
const (
	MarkArea   ShelfMark = "area"
	MarkBar    ShelfMark = "bar"
	MarkLine   ShelfMark = "line"
	MarkPoint  ShelfMark = "point"
	MarkRect   ShelfMark = "rect"
	MarkRule   ShelfMark = "rule"
	MarkText   ShelfMark = "text"
	MarkTick   ShelfMark = "tick"
	MarkCircle ShelfMark = "circle"
	MarkSquare ShelfMark = "square"
	MarkAny    ShelfMark = Wildcard
)

// ExpandedType is the semantic data type of a field, extended with the key
// type and the wildcard.
type ExpandedType string

// Semantic types.
const (
	TypeNominal      ExpandedType = "nominal"
	TypeOrdinal      ExpandedType = "ordinal"
	TypeQuantitative ExpandedType = "quantitative"
	TypeTemporal     ExpandedType = "temporal"
	TypeKey          ExpandedType = "key"
	TypeAny          ExpandedType = Wildcard
)

// ShelfFunction is the transform applied to a field on a shelf: an
// aggregate operation, a time unit, FunctionBin, or empty for none.
type ShelfFunction string

// FunctionBin bins a quantitative field.
const FunctionBin ShelfFunction = "bin"

// Aggregate operations.
const (
	AggregateValues    ShelfFunction = "values"
	AggregateCount     ShelfFunction = "count"
	AggregateValid     ShelfFunction = "valid"
	AggregateMissing   ShelfFunction = "missing"
	AggregateDistinct  ShelfFunction = "distinct"
	AggregateSum       ShelfFunction = "sum"
	AggregateMean      ShelfFunction = "mean"
	AggregateAverage   ShelfFunction = "average"
	AggregateVariance  ShelfFunction = "variance"
	AggregateVarianceP ShelfFunction = "variancep"
	AggregateStdev     ShelfFunction = "stdev"
	AggregateStdevP    ShelfFunction = "stdevp"
	AggregateMedian    ShelfFunction = "median"
	AggregateQ1        ShelfFunction = "q1"
	AggregateQ3        ShelfFunction = "q3"
	AggregateCI0       ShelfFunction = "ci0"
	AggregateCI1       ShelfFunction = "ci1"
	AggregateMin       ShelfFunction = "min"
	AggregateMax       ShelfFunction = "max"
	AggregateArgmin    ShelfFunction = "argmin"
	AggregateArgmax    ShelfFunction = "argmax"
)

// Time units.
const (
	TimeUnitYear                    ShelfFunction = "year"
	TimeUnitQuarter                 ShelfFunction = "quarter"
	TimeUnitMonth                   ShelfFunction = "month"
	TimeUnitDay                     ShelfFunction = "day"
	TimeUnitDate                    ShelfFunction = "date"
	TimeUnitHours                   ShelfFunction = "hours"
	TimeUnitMinutes                 ShelfFunction = "minutes"
	TimeUnitSeconds                 ShelfFunction = "seconds"
	TimeUnitMilliseconds            ShelfFunction = "milliseconds"
	TimeUnitYearQuarter             ShelfFunction = "yearquarter"
	TimeUnitYearQuarterMonth        ShelfFunction = "yearquartermonth"
	TimeUnitYearMonth               ShelfFunction = "yearmonth"
	TimeUnitYearMonthDate           ShelfFunction = "yearmonthdate"
	TimeUnitYearMonthDateHours      ShelfFunction = "yearmonthdatehours"
	TimeUnitYearMonthDateHoursMins  ShelfFunction = "yearmonthdatehoursminutes"
	TimeUnitYearMonthDateHoursMinsS ShelfFunction = "yearmonthdatehoursminutesseconds"
	TimeUnitQuarterMonth            ShelfFunction = "quartermonth"
	TimeUnitMonthDate               ShelfFunction = "monthdate"
	TimeUnitHoursMinutes            ShelfFunction = "hoursminutes"
	TimeUnitHoursMinutesSeconds     ShelfFunction = "hoursminutesseconds"
	TimeUnitMinutesSeconds          ShelfFunction = "minutesseconds"
	TimeUnitSecondsMilliseconds     ShelfFunction = "secondsmilliseconds"
)

var aggregateOps = map[ShelfFunction]bool{
	AggregateValues: true, AggregateCount: true, AggregateValid: true,
	AggregateMissing: true, AggregateDistinct: true, AggregateSum: true,
	AggregateMean: true, AggregateAverage: true, AggregateVariance: true,
	AggregateVarianceP: true, AggregateStdev: true, AggregateStdevP: true,
	AggregateMedian: true, AggregateQ1: true, AggregateQ3: true,
	AggregateCI0: true, AggregateCI1: true, AggregateMin: true,
	AggregateMax: true, AggregateArgmin: true, AggregateArgmax: true,
}

var timeUnits = map[ShelfFunction]bool{
	TimeUnitYear: true, TimeUnitQuarter: true, TimeUnitMonth: true,
	TimeUnitDay: true, TimeUnitDate: true, TimeUnitHours: true,
	TimeUnitMinutes: true, TimeUnitSeconds: true, TimeUnitMilliseconds: true,
	TimeUnitYearQuarter: true, TimeUnitYearQuarterMonth: true,
	TimeUnitYearMonth: true, TimeUnitYearMonthDate: true,
	TimeUnitYearMonthDateHours: true, TimeUnitYearMonthDateHoursMins: true,
	TimeUnitYearMonthDateHoursMinsS: true, TimeUnitQuarterMonth: true,
	TimeUnitMonthDate: true, TimeUnitHoursMinutes: true,
	TimeUnitHoursMinutesSeconds: true, TimeUnitMinutesSeconds: true,
	TimeUnitSecondsMilliseconds: true,
}

// IsAggregate reports whether fn is a known aggregate operation.
func (fn ShelfFunction) IsAggregate() bool { return aggregateOps[fn] }

// IsTimeUnit reports whether fn is a known time unit.
func (fn ShelfFunction) IsTimeUnit() bool { return timeUnits[fn] }

// IsBin reports whether fn is FunctionBin.
func (fn ShelfFunction) IsBin() bool { return fn == FunctionBin }
