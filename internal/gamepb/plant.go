package gamepb

import "github.com/blz111/qq-farm-bot/internal/domain"

// plantpb field numbers
const (
	fieldLandsReplyLands  = 1
	fieldLandsReplyLimits = 2

	fieldLandID       = 1
	fieldLandUnlocked = 2
	fieldLandPlant    = 3

	fieldPlantID           = 1
	fieldPlantName         = 2
	fieldPlantPhases       = 3
	fieldPlantDryNum       = 4
	fieldPlantWeedOwners   = 5
	fieldPlantInsectOwners = 6

	fieldPhaseTag    = 1
	fieldPhaseBegin  = 2
	fieldPhaseDry    = 3
	fieldPhaseWeeds  = 4
	fieldPhaseInsect = 5

	fieldLimitID    = 1
	fieldLimitTimes = 2
	fieldLimitMax   = 3

	fieldLandIDs = 1
	fieldHostGID = 2

	fieldPlantItems     = 1
	fieldPlantItemSeed  = 1
	fieldPlantItemLands = 2

	fieldFertilizeLands = 1
	fieldFertilizeItem  = 2

	fieldLandsNotifyLands = 1
	fieldLandsNotifyHost  = 2
)

// EncodeAllLandsRequest builds an AllLands request for the player's own farm
func EncodeAllLandsRequest() []byte {
	return []byte{}
}

// DecodeAllLandsReply parses the lands and daily operation limits
func DecodeAllLandsReply(b []byte) (*domain.LandsResult, error) {
	res := &domain.LandsResult{}
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldLandsReplyLands:
			land, err := decodeLand(f.Bytes)
			if err != nil {
				return err
			}
			res.Lands = append(res.Lands, land)
		case fieldLandsReplyLimits:
			limit, err := decodeOperationLimit(f.Bytes)
			if err != nil {
				return err
			}
			res.OperationLimits = append(res.OperationLimits, limit)
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return res, nil
}

// EncodeLandsRequest builds the shared body of the batch land operations
func EncodeLandsRequest(landIDs []int64, hostGID int64) []byte {
	var e encoder
	e.putPacked(fieldLandIDs, landIDs)
	e.putInt64(fieldHostGID, hostGID)
	return e.Bytes()
}

// EncodePlantRequest builds a plant request for one seed on the given lands
func EncodePlantRequest(seedID int64, landIDs []int64) []byte {
	var item encoder
	item.putInt64(fieldPlantItemSeed, seedID)
	item.putPacked(fieldPlantItemLands, landIDs)

	var e encoder
	e.putMessage(fieldPlantItems, item.Bytes())
	return e.Bytes()
}

// EncodeFertilizeRequest builds a fertilize request
func EncodeFertilizeRequest(fertilizerID int64, landIDs []int64) []byte {
	var e encoder
	e.putPacked(fieldFertilizeLands, landIDs)
	e.putInt64(fieldFertilizeItem, fertilizerID)
	return e.Bytes()
}

// LandsNotify is the server push sent when lands change
type LandsNotify struct {
	Lands   []domain.Land
	HostGID int64
}

// LandIDs returns the ids of the changed lands
func (n LandsNotify) LandIDs() []int64 {
	ids := make([]int64, 0, len(n.Lands))
	for _, l := range n.Lands {
		ids = append(ids, l.ID)
	}
	return ids
}

// DecodeLandsNotify parses a LandsNotify push body
func DecodeLandsNotify(b []byte) (LandsNotify, error) {
	var n LandsNotify
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldLandsNotifyLands:
			land, err := decodeLand(f.Bytes)
			if err != nil {
				return err
			}
			n.Lands = append(n.Lands, land)
		case fieldLandsNotifyHost:
			n.HostGID = f.Int64()
		}
		return nil
	})
	return n, err
}

func decodeLand(b []byte) (domain.Land, error) {
	var land domain.Land
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldLandID:
			land.ID = f.Int64()
		case fieldLandUnlocked:
			land.Unlocked = f.Bool()
		case fieldLandPlant:
			plant, err := decodePlant(f.Bytes)
			if err != nil {
				return err
			}
			land.Plant = plant
		}
		return nil
	})
	return land, err
}

func decodePlant(b []byte) (*domain.Plant, error) {
	p := &domain.Plant{}
	err := walk(b, func(f field) error {
		var err error
		switch f.Num {
		case fieldPlantID:
			p.ID = f.Int64()
		case fieldPlantName:
			p.Name = string(f.Bytes)
		case fieldPlantPhases:
			var ph domain.Phase
			ph, err = decodePhase(f.Bytes)
			p.Phases = append(p.Phases, ph)
		case fieldPlantDryNum:
			p.DryNum = f.Int64()
		case fieldPlantWeedOwners:
			p.WeedOwners, err = int64s(p.WeedOwners, f)
		case fieldPlantInsectOwners:
			p.InsectOwners, err = int64s(p.InsectOwners, f)
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func decodePhase(b []byte) (domain.Phase, error) {
	var ph domain.Phase
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldPhaseTag:
			ph.Tag = domain.PhaseTag(f.Int64())
		case fieldPhaseBegin:
			ph.BeginTime = f.Int64()
		case fieldPhaseDry:
			ph.DryTime = f.Int64()
		case fieldPhaseWeeds:
			ph.WeedsTime = f.Int64()
		case fieldPhaseInsect:
			ph.InsectTime = f.Int64()
		}
		return nil
	})
	return ph, err
}

func decodeOperationLimit(b []byte) (domain.OperationLimit, error) {
	var l domain.OperationLimit
	err := walk(b, func(f field) error {
		switch f.Num {
		case fieldLimitID:
			l.ID = f.Int64()
		case fieldLimitTimes:
			l.DayTimes = f.Int64()
		case fieldLimitMax:
			l.DayTimesLimit = f.Int64()
		}
		return nil
	})
	return l, err
}
