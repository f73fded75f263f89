package hostio

import "encoding/json"

// InkPerGas is the Stylus ink-to-gas conversion rate.
const InkPerGas = 10000

// Extract scans a raw trace value for hostio events and aggregates
// them into a Summary. It never fails: unparseable or hostio-free
// input yields an empty Summary. The scan is recursive because the
// stylusTracer nests the events of a sub-call under the initiating
// call_contract event's "steps" field.
func Extract(raw json.RawMessage) Summary {
	var value any
	if err := json.Unmarshal(raw, &value); err != nil {
		return Summary{}
	}

	var summary Summary

	walk(value, &summary)

	return summary
}

func walk(value any, summary *Summary) {
	switch v := value.(type) {
	case []any:
		for _, element := range v {
			walk(element, summary)
		}
	case map[string]any:
		if name, gas, ok := hostioEvent(v); ok {
			summary.record(Classify(name), gas)
		}

		for _, nested := range v {
			walk(nested, summary)
		}
	}
}

// hostioEvent reports whether an object is a hostio event and, if so,
// its name and gas cost. An event is recognized by a string "name"
// field alongside ink accounting; the ink delta converts to gas.
func hostioEvent(obj map[string]any) (name string, gas uint64, ok bool) {
	name, ok = obj["name"].(string)
	if !ok {
		return "", 0, false
	}

	startInk, hasStart := inkValue(obj["startInk"])
	if !hasStart {
		return "", 0, false
	}

	endInk, _ := inkValue(obj["endInk"])
	if endInk > startInk {
		// Corrupt accounting, count the event with zero cost.
		return name, 0, true
	}

	return name, (startInk - endInk) / InkPerGas, true
}

// inkValue extracts an ink figure from a decoded JSON value. The
// tracer emits plain numbers, which encoding/json decodes as float64.
func inkValue(value any) (uint64, bool) {
	n, ok := value.(float64)
	if !ok || n < 0 {
		return 0, false
	}

	return uint64(n), true
}
