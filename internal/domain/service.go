package domain

// ServiceConfig describes one queueable service type. The configured order
// is observable: listings, status views and the history graph iterate
// services in configuration order.
type ServiceConfig struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name"`
	DailyCapacity     int    `json:"daily_capacity"`
	AvgServiceMinutes int    `json:"avg_service_minutes"`
}

// ServiceInfo is the read-only listing view of a configured service.
type ServiceInfo struct {
	ID                string `json:"id"`
	DisplayName       string `json:"display_name"`
	DailyCapacity     int    `json:"daily_capacity"`
	AvgServiceMinutes int    `json:"avg_service_minutes"`
}

// ServiceStatus is a live per-service summary, computed on demand.
type ServiceStatus struct {
	ServiceID         string `json:"service_id"`
	DisplayName       string `json:"display_name"`
	Waiting           int    `json:"waiting"`
	Served            int    `json:"served"`
	BookedTotal       int    `json:"booked_total"`
	Capacity          int    `json:"capacity"`
	AvgServiceMinutes int    `json:"avg_service_minutes"`
	EstWaitNewUser    int    `json:"est_wait_new_user"`
}

// Snapshot maps service id to its waiting count at one point in event time.
type Snapshot map[string]int
