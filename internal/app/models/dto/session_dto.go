package dto

// CourseRequest carries a course draft for commit within an editing session.
// An empty id means "add"; a non-empty id means "edit by identity".
type CourseRequest struct {
	ID         string  `json:"id,omitempty"`
	Semester   int     `json:"semester" binding:"required" example:"1"`
	Code       string  `json:"code" example:"CS101"`
	Name       string  `json:"name" example:"Introduction to Computer Science"`
	Credits    float64 `json:"credits" example:"3"`
	Grade      string  `json:"grade,omitempty" example:"A"`
	Section    *string `json:"section,omitempty" example:"01"`
	Timing     *string `json:"timing,omitempty" example:"MWF 10:00 AM - 11:00 AM"`
	Difficulty *int    `json:"difficulty,omitempty" example:"3"`
}

// NoteRequest appends a note to the plan's note list
type NoteRequest struct {
	Note string `json:"note" binding:"required" example:"take CS101 before CS102"`
}
