package alpaca

// Credentials is an API key pair for one trading environment. A pair is
// never persisted by the client; it lives only as long as the Client
// holding it.
type Credentials struct {
	KeyID  string
	Secret string
}
