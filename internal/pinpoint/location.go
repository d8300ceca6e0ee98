package pinpoint

// UnknownLocation is the display name used when no place field could be
// resolved at all.
const UnknownLocation = "Unknown Location"

// ResolvedLocation is the place metadata for a coordinate. DisplayName is
// derived once at construction and never recomputed.
type ResolvedLocation struct {
	Country       string `json:"country"`
	State         string `json:"state,omitempty"`
	City          string `json:"city,omitempty"`
	Landmark      string `json:"landmark,omitempty"`
	Neighbourhood string `json:"neighbourhood,omitempty"`
	DisplayName   string `json:"displayName"`
}

// NewResolvedLocation builds a ResolvedLocation with DisplayName chosen by
// priority: landmark, city+state, city+country, neighbourhood+state,
// state+country, country alone, else UnknownLocation.
func NewResolvedLocation(country, state, city, landmark, neighbourhood string) ResolvedLocation {
	l := ResolvedLocation{
		Country:       country,
		State:         state,
		City:          city,
		Landmark:      landmark,
		Neighbourhood: neighbourhood,
	}
	l.DisplayName = l.displayName()
	return l
}

// CountryOnly builds the degraded location the resolver falls back to when
// only local containment is available. An empty country yields
// UnknownLocation.
func CountryOnly(country string) ResolvedLocation {
	if country == "" {
		return ResolvedLocation{DisplayName: UnknownLocation}
	}
	return ResolvedLocation{Country: country, DisplayName: country}
}

func (l ResolvedLocation) displayName() string {
	switch {
	case l.Landmark != "":
		return l.Landmark
	case l.City != "" && l.State != "":
		return l.City + ", " + l.State
	case l.City != "" && l.Country != "":
		return l.City + ", " + l.Country
	case l.Neighbourhood != "" && l.State != "":
		return l.Neighbourhood + ", " + l.State
	case l.State != "" && l.Country != "":
		return l.State + ", " + l.Country
	case l.Country != "":
		return l.Country
	default:
		return UnknownLocation
	}
}
