package models

// DayStat is one weekday's slice of the weekly summary.
type DayStat struct {
	Name      string `json:"name"`
	Scheduled int    `json:"scheduled"`
	Completed int    `json:"completed"`
	OnTime    int    `json:"onTime"`
}

// DayHighlight is a most/least productive day entry.
type DayHighlight struct {
	Day            int     `json:"day"`
	Name           string  `json:"name"`
	Scheduled      int     `json:"scheduled"`
	Completed      int     `json:"completed"`
	OnTime         int     `json:"onTime"`
	CompletionRate float64 `json:"completionRate"`
}

// WeeklySummary aggregates completion statistics per weekday.
// Rates are rounded whole percentages.
type WeeklySummary struct {
	DayStats           map[int]DayStat `json:"dayStats"`
	TotalScheduled     int             `json:"totalScheduled"`
	TotalCompleted     int             `json:"totalCompleted"`
	CompletedOnTime    int             `json:"completedOnTime"`
	CompletionRate     int             `json:"completionRate"`
	OnTimeRate         int             `json:"onTimeRate"`
	MostProductiveDay  *DayHighlight   `json:"mostProductiveDay"`
	LeastProductiveDay *DayHighlight   `json:"leastProductiveDay"`
}
