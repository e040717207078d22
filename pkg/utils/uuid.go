package utils

import gonanoid "github.com/matoous/go-nanoid/v2"

const characters = "ABCDEFGHIJKLMNOPQRSTUVWXYZabcdefghijklmnopqrstuvwxyz0123456789"

// GenerateID returns a short alphanumeric id for transient objects such as
// chat messages. Stored records use the storage package's timestamp ids.
func GenerateID() (string, error) {
	return gonanoid.Generate(characters, 6)
}
