package cryptox

import "crypto/rand"

// randRead is a test seam for crypto/rand.Read.
var randRead = rand.Read
