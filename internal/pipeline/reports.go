package pipeline

// Report pairs a fixed aggregation statement with its output file name.
// Report SQL is fixed at build time and is never user input.
type Report struct {
	Name       string
	OutputFile string
	SQL        string
}

// DefaultReports are the ridership reports produced from the MTA hourly
// subway dataset. Each ORDER BY carries a total ordering so repeated runs
// over an unchanged source are byte-identical.
func DefaultReports() []Report {
	return []Report{
		{
			Name:       "weekly_riders",
			OutputFile: "weekly_riders.csv",
			SQL: `
				SELECT
					station_complex,
					DATE_TRUNC('week', transit_timestamp)::DATE AS week_start,
					SUM(ridership) AS total_weekly_ridership
				FROM mta_hourly_subway
				GROUP BY
					station_complex,
					DATE_TRUNC('week', transit_timestamp)::DATE
				ORDER BY
					station_complex,
					week_start`,
		},
		{
			Name:       "ridership_by_borough",
			OutputFile: "ridership_by_borough.csv",
			SQL: `
				SELECT
					borough,
					SUM(ridership) AS total_ridership
				FROM mta_hourly_subway
				GROUP BY borough
				ORDER BY
					total_ridership DESC,
					borough`,
		},
		{
			Name:       "top_stations",
			OutputFile: "top_stations.csv",
			SQL: `
				SELECT
					station_complex,
					SUM(ridership) AS total_ridership
				FROM mta_hourly_subway
				GROUP BY station_complex
				ORDER BY
					total_ridership DESC,
					station_complex
				LIMIT 5`,
		},
	}
}
