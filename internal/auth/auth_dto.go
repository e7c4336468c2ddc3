package auth

type LoginRequest struct {
	Username string `json:"username" binding:"required"`
	Password string `json:"password" binding:"required"`
}

type RefreshRequest struct {
	RefreshToken string `json:"refresh_token" binding:"required"`
}

type TokenPairResponse struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
	TokenType    string `json:"token_type"`
	ExpiresIn    int64  `json:"expires_in"`
}

type MeResponse struct {
	ID           string   `json:"id"`
	Username     string   `json:"username"`
	SurName      string   `json:"sur_name"`
	FirstName    string   `json:"first_name"`
	FullName     string   `json:"full_name"`
	Email        string   `json:"email,omitempty"`
	Designation  string   `json:"designation,omitempty"`
	DepartmentID string   `json:"department_id,omitempty"`
	UnitID       string   `json:"unit_id,omitempty"`
	Capabilities []string `json:"capabilities"`
}
