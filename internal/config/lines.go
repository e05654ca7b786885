package config

// LineConfig is the small static mapping from a short line identifier
// (e.g. "yamanote") to its display name, GTFS route identifier, and
// internal polyline identifier (spec.md §3). Keys are externally
// stable: they appear in URLs and in the persisted dwell table.
type LineConfig struct {
	ID                 string // short identifier, e.g. "yamanote"
	DisplayName        string // e.g. "山手線"
	GTFSRouteID        string // e.g. "JR-East.Yamanote"
	InternalPolylineID string // key into coordinates.json's railways list
	IsLoop             bool
	// OutboundName/InboundName are the canonical per-line direction
	// labels used when deriving direction from odd/even train numbers
	// (spec.md §4.4). For loop lines these are ignored in favor of
	// OuterLoopName/InnerLoopName.
	OutboundName   string
	InboundName    string
	OuterLoopName  string
	InnerLoopName  string
}

// SupportedLines is the closed registry of lines this deployment knows
// about, ported from the original prototype's SUPPORTED_LINES table
// (config.py) and extended with the direction names gtfs_rt_vehicle.py's
// get_direction DIRECTION_MAP carried per route.
var SupportedLines = map[string]LineConfig{
	"yamanote": {
		ID:            "yamanote",
		DisplayName:   "山手線",
		GTFSRouteID:   "JR-East.Yamanote",
		InternalPolylineID: "JR-East.Yamanote",
		IsLoop:        true,
		OuterLoopName: "OuterLoop",
		InnerLoopName: "InnerLoop",
	},
	"chuo_rapid": {
		ID:                 "chuo_rapid",
		DisplayName:        "中央線快速",
		GTFSRouteID:        "JR-East.ChuoRapid",
		InternalPolylineID: "JR-East.ChuoRapid",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"keihin_tohoku": {
		ID:                 "keihin_tohoku",
		DisplayName:        "京浜東北線・根岸線",
		GTFSRouteID:        "JR-East.KeihinTohokuNegishi",
		InternalPolylineID: "JR-East.KeihinTohokuNegishi",
		OutboundName:       "Southbound",
		InboundName:        "Northbound",
	},
	"sobu_local": {
		ID:                 "sobu_local",
		DisplayName:        "総武線各駅停車",
		GTFSRouteID:        "JR-East.ChuoSobuLocal",
		InternalPolylineID: "JR-East.ChuoSobuLocal",
		OutboundName:       "Westbound",
		InboundName:        "Eastbound",
	},
	"yokohama": {
		ID:                 "yokohama",
		DisplayName:        "横浜線",
		GTFSRouteID:        "JR-East.Yokohama",
		InternalPolylineID: "JR-East.Yokohama",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"saikyo": {
		ID:                 "saikyo",
		DisplayName:        "埼京線・川越線",
		GTFSRouteID:        "JR-East.SaikyoKawagoe",
		InternalPolylineID: "JR-East.SaikyoKawagoe",
		OutboundName:       "Northbound",
		InboundName:        "Southbound",
	},
	"nambu": {
		ID:                 "nambu",
		DisplayName:        "南武線",
		GTFSRouteID:        "JR-East.Nambu",
		InternalPolylineID: "JR-East.Nambu",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"joban": {
		ID:                 "joban",
		DisplayName:        "常磐線",
		GTFSRouteID:        "JR-East.Joban",
		InternalPolylineID: "JR-East.Joban",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"joban_rapid": {
		ID:                 "joban_rapid",
		DisplayName:        "常磐線快速",
		GTFSRouteID:        "JR-East.JobanRapid",
		InternalPolylineID: "JR-East.JobanRapid",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"keiyo": {
		ID:                 "keiyo",
		DisplayName:        "京葉線",
		GTFSRouteID:        "JR-East.Keiyo",
		InternalPolylineID: "JR-East.Keiyo",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"musashino": {
		ID:                 "musashino",
		DisplayName:        "武蔵野線",
		GTFSRouteID:        "JR-East.Musashino",
		InternalPolylineID: "JR-East.Musashino",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"sobu_rapid": {
		ID:                 "sobu_rapid",
		DisplayName:        "総武快速線",
		GTFSRouteID:        "JR-East.SobuRapid",
		InternalPolylineID: "JR-East.SobuRapid",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"tokaido": {
		ID:                 "tokaido",
		DisplayName:        "東海道線",
		GTFSRouteID:        "JR-East.Tokaido",
		InternalPolylineID: "JR-East.Tokaido",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"yokosuka": {
		ID:                 "yokosuka",
		DisplayName:        "横須賀線",
		GTFSRouteID:        "JR-East.Yokosuka",
		InternalPolylineID: "JR-East.Yokosuka",
		OutboundName:       "Southbound",
		InboundName:        "Northbound",
	},
	"takasaki": {
		ID:                 "takasaki",
		DisplayName:        "高崎線",
		GTFSRouteID:        "JR-East.Takasaki",
		InternalPolylineID: "JR-East.Takasaki",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"utsunomiya": {
		ID:                 "utsunomiya",
		DisplayName:        "宇都宮線",
		GTFSRouteID:        "JR-East.Utsunomiya",
		InternalPolylineID: "JR-East.Utsunomiya",
		OutboundName:       "Outbound",
		InboundName:        "Inbound",
	},
	"shonan_shinjuku": {
		ID:                 "shonan_shinjuku",
		DisplayName:        "湘南新宿ライン",
		GTFSRouteID:        "JR-East.ShonanShinjuku",
		InternalPolylineID: "JR-East.ShonanShinjuku",
		OutboundName:       "Southbound",
		InboundName:        "Northbound",
	},
}

// GetLineConfig looks up a line by its short identifier or by its
// internal polyline identifier (spec.md §6 allows both on
// GET /api/lines/{line_id}).
func GetLineConfig(lineID string) (LineConfig, bool) {
	if lc, ok := SupportedLines[lineID]; ok {
		return lc, true
	}
	for _, lc := range SupportedLines {
		if lc.InternalPolylineID == lineID {
			return lc, true
		}
	}
	return LineConfig{}, false
}

// SuffixToRoutes is the closed mapping from a trip_id's trailing
// (uppercased) character to the GTFS route identifiers it might belong
// to (spec.md §4.4). Several routes share a suffix, so resolution still
// needs the target route to disambiguate. Ported from
// gtfs_rt_vehicle.py's SUFFIX_TO_ROUTES.
var SuffixToRoutes = map[string][]string{
	"G": {"JR-East.Yamanote"},
	"H": {"JR-East.ChuoRapid", "JR-East.Yokosuka"},
	"T": {"JR-East.ChuoRapid"},
	"A": {"JR-East.KeihinTohokuNegishi", "JR-East.ChuoSobuLocal"},
	"B": {"JR-East.KeihinTohokuNegishi", "JR-East.ChuoSobuLocal"},
	"C": {"JR-East.ChuoSobuLocal"},
	"K": {"JR-East.Yokohama", "JR-East.SaikyoKawagoe"},
	"F": {"JR-East.Nambu", "JR-East.SaikyoKawagoe", "JR-East.SobuRapid"},
	"M": {
		"JR-East.Joban", "JR-East.JobanRapid", "JR-East.SaikyoKawagoe",
		"JR-East.Keiyo", "JR-East.Tokaido", "JR-East.Sobu", "JR-East.SobuRapid",
	},
	"Y": {"JR-East.Yokosuka", "JR-East.Keiyo", "JR-East.Tokaido", "JR-East.ChuoSobuLocal"},
	"S": {"JR-East.SaikyoKawagoe", "JR-East.Yokosuka"},
	"E": {"JR-East.Musashino", "JR-East.Tokaido"},
}
