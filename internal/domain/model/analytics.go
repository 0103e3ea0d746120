package model

// AnalyticsSummary is the backend's operations roll-up.
type AnalyticsSummary struct {
	ActiveShifts   int `json:"active_shifts"`
	OpenIncidents  int `json:"open_incidents"`
	ActiveAlerts   int `json:"active_alerts"`
	GuardsOnDuty   int `json:"guards_on_duty"`
	SitesCovered   int `json:"sites_covered"`
	CheckpointsHit int `json:"checkpoints_hit"`
	IncidentsToday int `json:"incidents_today"`
	VisitorsOnSite int `json:"visitors_on_site"`
}

// SiteIncidentCount pairs a site with its incident tally.
type SiteIncidentCount struct {
	SiteID   string `json:"site_id"`
	SiteName string `json:"site_name,omitempty"`
	Count    int    `json:"count"`
}
