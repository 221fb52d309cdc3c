package normalizer

import (
	"bytes"
	"encoding/json"

	sonic "github.com/bytedance/sonic"
	"github.com/riskibarqy/matchday-aggregator/internal/platform/logging"
)

// DecodeRecords decodes every list element on its own. Elements that do not
// fit T are skipped and logged; the rest keep their order.
func DecodeRecords[T any](logger *logging.Logger, provider string, raws []json.RawMessage) []T {
	if logger == nil {
		logger = logging.Default()
	}
	out := make([]T, 0, len(raws))
	for idx, raw := range raws {
		var item T
		if err := sonic.Unmarshal(raw, &item); err != nil {
			logSkip(logger, provider, "record does not match payload shape", "index", idx, "error", err)
			continue
		}
		out = append(out, item)
	}
	return out
}

func logSkip(logger *logging.Logger, provider, reason string, args ...any) {
	fields := append([]any{"provider", provider, "reason", reason}, args...)
	logger.Warn("skip malformed upstream record", fields...)
}

// VenueName accepts a venue as a plain string or as an object with a name.
type VenueName string

func (v *VenueName) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || bytes.Equal(data, []byte("null")) {
		*v = ""
		return nil
	}
	if data[0] == '"' {
		var name string
		if err := sonic.Unmarshal(data, &name); err != nil {
			return err
		}
		*v = VenueName(name)
		return nil
	}

	var obj struct {
		Name string `json:"name"`
	}
	if err := sonic.Unmarshal(data, &obj); err != nil {
		return err
	}
	*v = VenueName(obj.Name)
	return nil
}
