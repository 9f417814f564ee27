package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

type JobOpening struct {
	ID          int      `json:"id"`
	Title       string   `json:"title"`
	Department  string   `json:"department"`
	Type        string   `json:"type"`
	Location    string   `json:"location"`
	Experience  string   `json:"experience"`
	Salary      string   `json:"salary"`
	Description string   `json:"description"`
	Skills      []string `json:"skills"`
	Urgent      bool     `json:"urgent"`
	Posted      string   `json:"posted"`
}

// openings is the careers page listing. It is not stored anywhere.
var openings = []JobOpening{
	{
		ID:          1,
		Title:       "Senior Frontend Developer",
		Department:  "engineering",
		Type:        "Full-time",
		Location:    "Remote",
		Experience:  "5+ years",
		Salary:      "$12,000 - $16,000",
		Description: "Build cutting-edge user interfaces using React, TypeScript, and modern web technologies.",
		Skills:      []string{"React", "TypeScript", "Next.js", "Tailwind CSS", "GraphQL"},
		Urgent:      true,
		Posted:      "2 days ago",
	},
	{
		ID:          2,
		Title:       "UX/UI Designer",
		Department:  "design",
		Type:        "Full-time",
		Location:    "Remote",
		Experience:  "3+ years",
		Salary:      "$90,000 - $130,000",
		Description: "Create beautiful and intuitive user experiences for our product suite.",
		Skills:      []string{"Figma", "UI/UX Design", "Prototyping", "User Research", "Design Systems"},
		Urgent:      false,
		Posted:      "1 week ago",
	},
}

func (h *Handler) JobOpenings(c *gin.Context) {
	c.JSON(http.StatusOK, openings)
}
