// Package repo holds the store and repository implementations: process
// memory, Redis for the per-room working state, SQL for durable records and
// S3 for archived call reports.
package repo

import (
	"fmt"

	jsoniter "github.com/json-iterator/go"
)

// json behaves like encoding/json, so model types keep their text codecs.
var json = jsoniter.ConfigCompatibleWithStandardLibrary

func conversationKey(roomID, part string) string {
	return fmt.Sprintf("conversation:%s:%s", roomID, part)
}
