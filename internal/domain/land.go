package domain

// PhaseTag identifies a stage in a plant's growth timeline
type PhaseTag int32

// Phase tags reported by the farm service. Only Mature and Dead carry meaning
// for the engine; every other tag is treated as growing.
const (
	PhaseUnknown     PhaseTag = 0
	PhaseSeed        PhaseTag = 1
	PhaseGermination PhaseTag = 2
	PhaseSmallLeaves PhaseTag = 3
	PhaseLargeLeaves PhaseTag = 4
	PhaseBlooming    PhaseTag = 5
	PhaseMature      PhaseTag = 6
	PhaseDead        PhaseTag = 7
)

// IsMature reports whether the tag marks a harvestable plant
func (t PhaseTag) IsMature() bool { return t == PhaseMature }

// IsDead reports whether the tag marks a withered plant
func (t PhaseTag) IsDead() bool { return t == PhaseDead }

// Phase is a dated stage of a plant. All timestamps are server-clock seconds;
// zero means "not scheduled".
type Phase struct {
	Tag        PhaseTag `json:"tag"`
	BeginTime  int64    `json:"begin_time"`
	DryTime    int64    `json:"dry_time"`
	WeedsTime  int64    `json:"weeds_time"`
	InsectTime int64    `json:"insect_time"`
}

// Plant is the crop currently occupying a land
type Plant struct {
	ID           int64   `json:"id"`
	Name         string  `json:"name"`
	Phases       []Phase `json:"phases"`
	DryNum       int64   `json:"dry_num"`
	WeedOwners   []int64 `json:"weed_owners,omitempty"`
	InsectOwners []int64 `json:"insect_owners,omitempty"`
}

// Land is a single plot. Lands are owned by the server; the engine only reads
// them and requests mutations.
type Land struct {
	ID       int64  `json:"id"`
	Unlocked bool   `json:"unlocked"`
	Plant    *Plant `json:"plant,omitempty"`
}

// OperationLimit is the daily counter the server reports for an operation kind
type OperationLimit struct {
	ID            int64 `json:"id"`
	DayTimes      int64 `json:"day_times"`
	DayTimesLimit int64 `json:"day_times_limit"`
}

// Remaining returns how many operations are left today, never negative
func (l OperationLimit) Remaining() int64 {
	if l.DayTimesLimit <= l.DayTimes {
		return 0
	}
	return l.DayTimesLimit - l.DayTimes
}

// LandsResult is the outcome of a full lands fetch
type LandsResult struct {
	Lands           []Land           `json:"lands"`
	OperationLimits []OperationLimit `json:"operation_limits,omitempty"`
}

// ItemStack is a bag entry
type ItemStack struct {
	ID    int64 `json:"id"`
	Count int64 `json:"count"`
}

// ShopGoods is an entry of a remote shop listing
type ShopGoods struct {
	GoodsID  int64 `json:"goods_id"`
	ItemID   int64 `json:"item_id"`
	Price    int64 `json:"price"`
	Unlocked bool  `json:"unlocked"`
}

// Player holds the account fields the engine consumes
type Player struct {
	GID   int64  `json:"gid"`
	Name  string `json:"name"`
	Level int    `json:"level"`
	Exp   int64  `json:"exp"`
	Gold  int64  `json:"gold"`
}
