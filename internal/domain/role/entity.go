package role

import "time"

// Role names a permission set. Permissions is a JSONB document keyed by
// feature tab (e.g. "attendance_dashboard") so the frontend can derive
// visible tabs without a second round trip.
type Role struct {
	ID          int64
	Name        string
	Permissions map[string]interface{}
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Default permission documents seeded on first use. Each module doc carries
// an enabled switch plus the feature menus the frontend may render. The admin
// role is special-cased in code but seeded too so its document is editable.
func DefaultRoles() []Role {
	return []Role{
		{
			Name: "admin",
			Permissions: map[string]interface{}{
				"attendance_dashboard": map[string]interface{}{
					"enabled":  true,
					"features": []interface{}{"dashboard", "on_time", "work_hour", "work_hour_lost", "leave_analysis", "upload", "batches", "export"},
				},
				"teams_dashboard": map[string]interface{}{
					"enabled":  true,
					"features": []interface{}{"user_activity", "upload_activity", "activity_batches", "app_activity", "upload_app", "app_batches", "employee_list", "license_entry", "license_edit", "export"},
				},
			},
		},
		{
			Name: "manager",
			Permissions: map[string]interface{}{
				"attendance_dashboard": map[string]interface{}{
					"enabled":  true,
					"features": []interface{}{"dashboard", "on_time", "work_hour", "work_hour_lost", "leave_analysis", "export"},
				},
				"teams_dashboard": map[string]interface{}{
					"enabled":  true,
					"features": []interface{}{"user_activity", "app_activity", "employee_list"},
				},
			},
		},
		{
			Name: "user",
			Permissions: map[string]interface{}{
				"attendance_dashboard": map[string]interface{}{
					"enabled":  true,
					"features": []interface{}{"dashboard"},
				},
				"teams_dashboard": map[string]interface{}{
					"enabled":  false,
					"features": []interface{}{},
				},
			},
		},
	}
}
