package httpapi

import "github.com/akosarev/notekeeper/internal/server/models"

type signupRequest struct {
	Username    string `json:"username"`
	Password    string `json:"password"`
	Email       string `json:"email"`
	Name        string `json:"name"`
	PhoneNumber string `json:"phoneNumber"`
}

type loginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

type tokenResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

type profileResponse struct {
	ID       string `json:"id"`
	Username string `json:"username"`
}

type createNoteRequest struct {
	Title   string `json:"title"`
	Content string `json:"content"`
}

type updateNoteRequest struct {
	Title   *string `json:"title"`
	Content *string `json:"content"`
}

type shareNoteRequest struct {
	UserID string `json:"userId"`
}

// noteSummary is the only note shape that crosses the boundary; the owner id
// and timestamps never leave the server.
type noteSummary struct {
	ID      string `json:"id"`
	Title   string `json:"title"`
	Content string `json:"content"`
}

func toNoteSummary(n *models.Note) noteSummary {
	return noteSummary{ID: n.ID, Title: n.Title, Content: n.Content}
}

func toNoteSummaries(notes []*models.Note) []noteSummary {
	result := make([]noteSummary, 0, len(notes))
	for _, n := range notes {
		result = append(result, toNoteSummary(n))
	}
	return result
}
