package booking

import "testing"

func TestCanCancel(t *testing.T) {
	const today = "2024-06-10"
	base := Reservation{ID: "R1", OwnerID: "U1", CreatorID: "U2", Status: ReservationBooked}

	tests := []struct {
		name   string
		date   string
		viewer string
		want   bool
	}{
		{"owner, same day", today, "U1", true},
		{"owner, future", "2024-06-11", "U1", true},
		{"creator, future", "2024-07-01", "U2", true},
		{"stranger, future", "2024-07-01", "U9", false},
		{"owner, past", "2024-06-09", "U1", false},
		{"creator, past", "2024-06-09", "U2", false},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := base
			res.Date = tt.date
			if got := canCancel(res, tt.viewer, today); got != tt.want {
				t.Errorf("canCancel(date=%s, viewer=%s) = %v, want %v", tt.date, tt.viewer, got, tt.want)
			}
		})
	}
}

func TestBuildDetailDefaultsMissingNames(t *testing.T) {
	res := Reservation{
		ID: "R1", DeskID: "D1", OwnerID: "U1", CreatorID: "U1",
		Date: "2024-06-10", Status: ReservationBooked,
		DeskName: "Desk 7",
		// Floor, office, location and owner names omitted by the backend.
	}
	det := buildDetail(res, "U1", "2024-06-10")
	if det.DeskName != "Desk 7" {
		t.Errorf("DeskName = %q, want Desk 7", det.DeskName)
	}
	for name, got := range map[string]string{
		"FloorName":    det.FloorName,
		"OfficeName":   det.OfficeName,
		"LocationName": det.LocationName,
		"OwnerName":    det.OwnerName,
	} {
		if got != missingName {
			t.Errorf("%s = %q, want %q", name, got, missingName)
		}
	}
	if !det.CanCancel {
		t.Error("owner on same-day reservation should be cancellable")
	}
}
