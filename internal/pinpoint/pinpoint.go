// Package pinpoint defines the core domain types and scoring rules of the
// game.
package pinpoint

// Coordinate is a WGS84 point. Lat is in [-90,90], Lng in [-180,180].
type Coordinate struct {
	Lat float64 `json:"lat"`
	Lng float64 `json:"lng"`
}

// PuzzleLocation is the point a round asks the player to find, annotated
// with whatever place metadata resolution produced.
type PuzzleLocation struct {
	ID       string  `json:"id"`
	Lat      float64 `json:"lat"`
	Lng      float64 `json:"lng"`
	Country  string  `json:"country,omitempty"`
	City     string  `json:"city,omitempty"`
	State    string  `json:"state,omitempty"`
	Landmark string  `json:"landmark,omitempty"`
}

// Puzzle is one round's target. Daily puzzles share an id across every
// client ("daily-<YYYY-MM-DD>"); practice puzzles get a unique id per
// generation. Immutable after creation.
type Puzzle struct {
	ID       string         `json:"id"`
	Location PuzzleLocation `json:"location"`
}

// Coord returns the puzzle's target coordinate.
func (p Puzzle) Coord() Coordinate {
	return Coordinate{Lat: p.Location.Lat, Lng: p.Location.Lng}
}

// GameResult is one completed round. Appended to the rolling history and
// never mutated afterwards.
type GameResult struct {
	PuzzleID   string     `json:"puzzleId"`
	Date       string     `json:"date"`
	DistanceKm float64    `json:"distanceKm"`
	ZoomLevel  int        `json:"zoomLevel"`
	MaxZoom    int        `json:"maxZoom"`
	Guess      Coordinate `json:"guess"`
	Actual     Coordinate `json:"actual"`
	Country    string     `json:"country,omitempty"`
	City       string     `json:"city,omitempty"`
	State      string     `json:"state,omitempty"`
}

// DailyResult is one completed daily round, keyed by date. The resolved
// fields for both ends of the guess are kept for leaderboard display.
type DailyResult struct {
	Date        string           `json:"date"`
	PlayerName  string           `json:"playerName"`
	DistanceKm  float64          `json:"distanceKm"`
	ZoomLevel   int              `json:"zoomLevel"`
	MaxZoom     int              `json:"maxZoom"`
	Guess       Coordinate       `json:"guess"`
	Actual      Coordinate       `json:"actual"`
	ActualPlace ResolvedLocation `json:"actualPlace"`
	GuessPlace  ResolvedLocation `json:"guessPlace"`
}

// SavedLocation is a bookmarked point the player chose to keep.
type SavedLocation struct {
	ID      string  `json:"id"`
	Name    string  `json:"name"`
	Lat     float64 `json:"lat"`
	Lng     float64 `json:"lng"`
	SavedAt string  `json:"savedAt"`
}

// CountryRollup aggregates the rounds that landed in one country.
type CountryRollup struct {
	Count            int     `json:"count"`
	BestDistanceKm   float64 `json:"bestDistanceKm"`
	BestDistanceZoom int     `json:"bestDistanceZoom"`
}

// PlayerStats is a derived aggregate over the GameResult history. It is
// never a source of truth: recomputing from the same history must always
// reproduce it exactly.
type PlayerStats struct {
	TotalGames       int                      `json:"totalGames"`
	MedianDistanceKm float64                  `json:"medianDistanceKm"`
	BestDistanceKm   float64                  `json:"bestDistanceKm"`
	WorstDistanceKm  float64                  `json:"worstDistanceKm"`
	AverageZoomLevel float64                  `json:"averageZoomLevel"`
	Countries        map[string]CountryRollup `json:"countries"`
	Continents       map[string]int           `json:"continents"`
}
