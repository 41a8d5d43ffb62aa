package models

type PlayerType string

const (
	PlayerTypeStudent PlayerType = "student"
	PlayerTypeStaff   PlayerType = "staff"
)

const (
	StudentFee    = 150
	NonStudentFee = 300
)

// Fee is the entry fee for one player; anything other than a student pays the full rate.
func (t PlayerType) Fee() int {
	if t == PlayerTypeStudent {
		return StudentFee
	}
	return NonStudentFee
}

type Player struct {
	ID          int        `json:"id" db:"id"`
	TeamID      int        `json:"team_id" db:"team_id"`
	FullName    string     `json:"full_name" db:"full_name"`
	StdStaffID  string     `json:"std_staff_id" db:"std_staff_id"`
	Type        PlayerType `json:"type" db:"type"`
	PhotoPath   string     `json:"photo_path" db:"photo_path"`
	IsPlayerOne bool       `json:"is_player_one" db:"is_player_one"`
}
