package steg

// Historical front-ends shipped fixed seed and passphrase literals that were
// applied whenever the user left the fields blank. They are configuration,
// not secrets: they carry no security value and exist only so that the two
// sides of a default-configured exchange agree. Override them or pass
// explicit values.
var (
	DefaultSeed       = "seedveil"
	DefaultPassphrase = "seedveil"
)
