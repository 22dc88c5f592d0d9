// Package app connects the browser UI to the project settings and the camera.
//
// The UI sends Messages naming what happened ("update_iso", "create_process",
// ...) and receives Calls naming the JavaScript function to run in reply.
package app

// Message is one UI event.
type Message struct {
	ID    int               `json:"id"`
	Name  string            `json:"name"`
	Value string            `json:"value"`
	Info  map[string]string `json:"info"`
}

// Call asks the UI to run Func with Args.
type Call struct {
	ID   int    `json:"id,omitempty"`
	Func string `json:"func"`
	Args []any  `json:"args"`
}

// UI functions invoked by the application.
const (
	FuncSetRoot            = "set_root"
	FuncSetProcessList     = "set_process_list"
	FuncSetCalibrationList = "set_calibration_list"
	FuncSetConnection      = "set_connection"
	FuncSetImage           = "set_image"
	FuncSetExposure        = "set_exposure"
	FuncErrorMsg           = "error_msg"
)

// ConnectionLost is the set_connection argument when no camera is attached.
const ConnectionLost = "disconnecting"

// ExposureView is the set_exposure payload.
type ExposureView struct {
	ISO      string   `json:"iso"`
	Aperture string   `json:"aperture"`
	Shutter  string   `json:"shutter"`
	EV       *float64 `json:"ev"`
	Error    string   `json:"error,omitempty"`
}

func call(fn string, args ...any) Call {
	if args == nil {
		args = []any{}
	}
	return Call{Func: fn, Args: args}
}

func errorCall(title, message string) Call {
	return call(FuncErrorMsg, title, message)
}
