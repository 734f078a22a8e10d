// Package result holds the ranked hit type returned by searches.
package result

import "encoding/json"

// Hit is one ranked search result: the stored document exactly as the engine
// returned it, plus its relevance score.
type Hit struct {
	Document json.RawMessage
	Score    float64
}
