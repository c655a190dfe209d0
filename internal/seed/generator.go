package seed

import (
	"math"
	"math/rand"
	"time"
)

// Row is one synthetic hourly ridership observation, shaped like the MTA
// hourly subway dataset the pipeline queries.
type Row struct {
	TransitTimestamp time.Time `parquet:"transit_timestamp,timestamp"`
	StationComplex   string    `parquet:"station_complex"`
	Borough          string    `parquet:"borough"`
	Ridership        float64   `parquet:"ridership"`
}

type station struct {
	name    string
	borough string
	weight  float64
}

var stationCatalog = []station{
	{name: "Times Sq-42 St", borough: "Manhattan", weight: 9.0},
	{name: "Grand Central-42 St", borough: "Manhattan", weight: 8.5},
	{name: "34 St-Herald Sq", borough: "Manhattan", weight: 7.0},
	{name: "Fulton St", borough: "Manhattan", weight: 5.5},
	{name: "Atlantic Av-Barclays Ctr", borough: "Brooklyn", weight: 5.0},
	{name: "Court Sq", borough: "Queens", weight: 3.5},
	{name: "Jackson Hts-Roosevelt Av", borough: "Queens", weight: 4.0},
	{name: "161 St-Yankee Stadium", borough: "Bronx", weight: 3.0},
	{name: "3 Av-149 St", borough: "Bronx", weight: 2.0},
	{name: "St George", borough: "Staten Island", weight: 1.0},
}

// Generator emits rows hour by hour, cycling the station catalog within each
// hour. The same seed and partition always produce the same sequence.
type Generator struct {
	rnd    *rand.Rand
	hour   time.Time
	cursor int
}

func NewGenerator(seed int64, year, month int) *Generator {
	return &Generator{
		rnd:  rand.New(rand.NewSource(seed)),
		hour: time.Date(year, time.Month(month), 1, 0, 0, 0, 0, time.UTC),
	}
}

func (g *Generator) NextRow() Row {
	st := stationCatalog[g.cursor]
	row := Row{
		TransitTimestamp: g.hour,
		StationComplex:   st.name,
		Borough:          st.borough,
		Ridership:        g.pickRidership(st),
	}

	g.cursor++
	if g.cursor == len(stationCatalog) {
		g.cursor = 0
		g.hour = g.hour.Add(time.Hour)
	}
	return row
}

func (g *Generator) pickRidership(st station) float64 {
	base := st.weight * 40
	peak := 1.0
	switch hour := g.hour.Hour(); {
	case hour >= 7 && hour <= 9:
		peak = 2.5
	case hour >= 16 && hour <= 19:
		peak = 2.2
	case hour <= 4:
		peak = 0.2
	}
	return math.Round(base * peak * (0.5 + g.rnd.Float64()))
}
