package dto

// ── 认证模块请求 ──

// LoginRequest 登录请求
type LoginRequest struct {
	Email      string `json:"email"       binding:"required,email"`
	Password   string `json:"password"    binding:"required,min=8"`
	RememberMe bool   `json:"remember_me"`
}

// ── 认证模块响应 ──

// StaffResponse 员工信息响应（脱敏）
type StaffResponse struct {
	ID       string  `json:"id"`
	FullName string  `json:"full_name"`
	Email    string  `json:"email"`
	Role     string  `json:"role"`
	LgaID    *string `json:"lga_id,omitempty"`
	LgaName  string  `json:"lga_name,omitempty"`
}

// TokenResponse Token 对响应
type TokenResponse struct {
	AccessToken  string        `json:"access_token"`
	RefreshToken string        `json:"refresh_token,omitempty"`
	ExpiresIn    int           `json:"expires_in"` // Access Token 有效期（秒）
	User         StaffResponse `json:"user"`
}
