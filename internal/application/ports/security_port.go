package ports

// PasswordHasher colaborador de autenticación: hashea y verifica contraseñas.
type PasswordHasher interface {
	Hash(plain string) (string, error)
	Matches(hash, plain string) bool
}
