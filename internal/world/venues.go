package world

import (
	"fmt"
	"math"

	"github.com/talgya/streetsim/internal/modifiers"
)

// VenueType tags what kind of place a venue is.
type VenueType uint8

const (
	VenueDiner VenueType = iota
	VenueTaqueria
	VenueCornerStore
	VenueCoffeeShop
	VenueShelter
	VenueAlley
	VenueBench
	VenueDoorway
	VenueIncubator
	VenueVCOffice
	VenueChurch
	VenueSoupKitchen
	VenueCardRoom
	VenuePawnShop
	VenueDumpster
	VenuePlaza
	VenueApartment
	VenueBoutique
	VenueGallery
	VenueParkingLot
)

// Zone is the hotspot a venue activates.
type Zone uint8

const (
	ZoneNone Zone = iota
	ZoneFood
	ZoneShop
	ZoneShelter
	ZoneAlley
	ZoneBench
	ZonePitch
	ZoneCharity
	ZoneGamble
	ZonePawn
	ZoneDumpster
	ZonePlaza
)

// ZoneOf maps a venue type to its zone. Decorative venues map to ZoneNone.
func ZoneOf(t VenueType) Zone {
	switch t {
	case VenueDiner, VenueTaqueria:
		return ZoneFood
	case VenueCornerStore, VenueCoffeeShop:
		return ZoneShop
	case VenueShelter:
		return ZoneShelter
	case VenueAlley:
		return ZoneAlley
	case VenueBench, VenueDoorway:
		return ZoneBench
	case VenueIncubator, VenueVCOffice:
		return ZonePitch
	case VenueChurch, VenueSoupKitchen:
		return ZoneCharity
	case VenueCardRoom:
		return ZoneGamble
	case VenuePawnShop:
		return ZonePawn
	case VenueDumpster:
		return ZoneDumpster
	case VenuePlaza:
		return ZonePlaza
	case VenueApartment, VenueBoutique, VenueGallery, VenueParkingLot:
		return ZoneNone
	}
	panic(fmt.Sprintf("world: unknown venue type %d", t))
}

// Visible reports whether standing in the zone puts the player in plain view
// of storefronts and patrols.
func (z Zone) Visible() bool {
	switch z {
	case ZoneFood, ZoneShop, ZonePitch, ZoneGamble, ZonePawn, ZonePlaza:
		return true
	}
	return false
}

// Sleepable reports whether the player can bed down in the zone.
func (z Zone) Sleepable() bool {
	return z == ZoneShelter || z == ZoneBench
}

func (z Zone) String() string {
	switch z {
	case ZoneNone:
		return "none"
	case ZoneFood:
		return "food"
	case ZoneShop:
		return "shop"
	case ZoneShelter:
		return "shelter"
	case ZoneAlley:
		return "alley"
	case ZoneBench:
		return "bench"
	case ZonePitch:
		return "pitch"
	case ZoneCharity:
		return "charity"
	case ZoneGamble:
		return "gamble"
	case ZonePawn:
		return "pawn"
	case ZoneDumpster:
		return "dumpster"
	case ZonePlaza:
		return "plaza"
	}
	return "unknown"
}

// Venue is a named, typed place on a district's street strip.
type Venue struct {
	Name string    `json:"name"`
	Type VenueType `json:"type"`
}

// Strip layout constants.
const (
	VenueWidth     = 160.0 // world units per venue on the strip
	VenueParallax  = 0.8   // the storefront layer scrolls slower than the street
	LateralToWorld = 8.0   // world units per lateral player unit
)

var venueStrips = [modifiers.NumDistricts][]Venue{
	modifiers.DistrictTenderloin: {
		{"Glide Memorial", VenueChurch},
		{"Larkin St Alley", VenueAlley},
		{"Hyde Corner Market", VenueCornerStore},
		{"SRO Doorway", VenueDoorway},
		{"St. Anthony's", VenueSoupKitchen},
		{"Navigation Center", VenueShelter},
		{"Boeddeker Park", VenuePlaza},
		{"Turk St Dumpster", VenueDumpster},
	},
	modifiers.DistrictSoMa: {
		{"Founders Garage", VenueIncubator},
		{"6th St Alley", VenueAlley},
		{"Sunrise Diner", VenueDiner},
		{"Loft Conversion", VenueApartment},
		{"Bus Shelter Bench", VenueBench},
		{"Mission Cash & Pawn", VenuePawnShop},
		{"Third Wave Coffee", VenueCoffeeShop},
		{"Recycling Dumpster", VenueDumpster},
		{"MSC South", VenueShelter},
	},
	modifiers.DistrictFinancial: {
		{"Sand Hill Annex", VenueVCOffice},
		{"Justin Herman Plaza", VenuePlaza},
		{"Blue Bottle Kiosk", VenueCoffeeShop},
		{"Tower Lobby", VenueBoutique},
		{"Parking Garage", VenueParkingLot},
		{"Pine St Diner", VenueDiner},
		{"Marble Steps", VenueBench},
	},
	modifiers.DistrictChinatown: {
		{"Lucky Card Room", VenueCardRoom},
		{"Ross Alley", VenueAlley},
		{"Portsmouth Square", VenuePlaza},
		{"Dim Sum Counter", VenueDiner},
		{"Herb Shop", VenueCornerStore},
		{"Jewelry Pawn", VenuePawnShop},
	},
	modifiers.DistrictNorthBeach: {
		{"Washington Square", VenuePlaza},
		{"Jack Kerouac Alley", VenueAlley},
		{"Caffe Trieste", VenueCoffeeShop},
		{"Broadway Card Club", VenueCardRoom},
		{"Saints Peter and Paul", VenueChurch},
		{"Gallery Row", VenueGallery},
		{"Pizza Slice Window", VenueDiner},
	},
	modifiers.DistrictMarina: {
		{"Chestnut Boutique", VenueBoutique},
		{"Accelerator Loft", VenueIncubator},
		{"Marina Green Bench", VenueBench},
		{"Juice Bar", VenueCoffeeShop},
		{"Yacht Club Lot", VenueParkingLot},
		{"Brunch Spot", VenueDiner},
		{"Condo Row", VenueApartment},
	},
	modifiers.DistrictHaight: {
		{"Hippie Hill", VenuePlaza},
		{"Free Clinic", VenueChurch},
		{"Vintage Pawn", VenuePawnShop},
		{"Haight Alley", VenueAlley},
		{"Record Store", VenueGallery},
		{"Corner Deli", VenueCornerStore},
		{"Park Bench", VenueBench},
	},
	modifiers.DistrictMission: {
		{"Taqueria El Farolito", VenueTaqueria},
		{"Clarion Alley", VenueAlley},
		{"Dolores Park", VenuePlaza},
		{"Valencia Coworking", VenueIncubator},
		{"Mission Shelter", VenueShelter},
		{"Bodega", VenueCornerStore},
		{"Restaurant Dumpster", VenueDumpster},
		{"Mural Wall", VenueGallery},
	},
	modifiers.DistrictCastro: {
		{"Harvey Milk Plaza", VenuePlaza},
		{"Castro Theatre Steps", VenueDoorway},
		{"Most Holy Redeemer", VenueChurch},
		{"Late Night Diner", VenueDiner},
		{"Victorian Row", VenueApartment},
		{"Coffee Roasters", VenueCoffeeShop},
	},
}

// Venues returns the venue strip of a district.
func Venues(d modifiers.District) []Venue {
	return venueStrips[d]
}

// VenueAt returns the venue in front of a player at the given lateral
// position, and the zone it activates.
func VenueAt(offset, lateral float64) (Venue, Zone) {
	strip := venueStrips[DistrictAt(offset)]
	span := float64(len(strip)) * VenueWidth
	pos := floorMod(offset*VenueParallax+lateral*LateralToWorld, span)
	idx := int(math.Floor(pos / VenueWidth))
	if idx >= len(strip) {
		idx = len(strip) - 1
	}
	v := strip[idx]
	return v, ZoneOf(v.Type)
}
