package scene

// Vault stores all secrets which are necessary
type Vault struct {
	JwtSigningKey string `json:"JwtSigningKey"`
}
