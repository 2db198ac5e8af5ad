package socket

import (
	"encoding/json"
	"fmt"

	"github.com/boxmux/boxmux/internal/coordinator"
)

// decodeCommand turns one named command and its raw JSON payload into
// the Mutation the coordinator understands, per spec.md §6's command
// enumeration.
func decodeCommand(name string, raw json.RawMessage) (coordinator.Mutation, error) {
	switch name {
	case "UpdateBox":
		var p UpdateBoxParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutUpdateBox, BoxID: p.BoxID, Content: p.Content}, nil

	case "AppendBox":
		var p AppendBoxParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutAppendBox, BoxID: p.BoxID, Content: p.Content}, nil

	case "RefreshBox":
		var p RefreshBoxParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutRefreshBox, BoxID: p.BoxID}, nil

	case "SetBoxProperty":
		var p SetBoxPropertyParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutSetBoxProperty, BoxID: p.BoxID, Property: p.Property, Value: p.Value}, nil

	case "ExecuteScript":
		var p ExecuteScriptParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutExecuteScript, BoxID: p.BoxID, Script: p.Script, Append: p.Append}, nil

	case "AddBox":
		var p AddBoxParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutAddBox, ParentID: p.ParentID, Definition: p.Definition}, nil

	case "RemoveBox":
		var p RemoveBoxParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutRemoveBox, BoxID: p.BoxID}, nil

	case "ReplaceBox":
		var p ReplaceBoxParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutReplaceBox, BoxID: p.BoxID, Definition: p.Definition}, nil

	case "SendKey":
		var p SendKeyParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutSendKey, Key: p.Key}, nil

	case "FocusBox":
		var p FocusBoxParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutFocusBox, BoxID: p.BoxID}, nil

	case "SwitchLayout":
		var p SwitchLayoutParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutSwitchLayout, LayoutID: p.LayoutID}, nil

	case "GetCurrentLayout":
		return coordinator.Mutation{Kind: coordinator.MutGetCurrentLayout}, nil

	case "ReloadConfig":
		var p ReloadConfigParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutReloadConfig, ConfigPath: p.ConfigFile}, nil

	case "SpawnPty":
		var p SpawnPtyParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutSpawnPty, BoxID: p.BoxID, Script: p.Script}, nil

	case "KillPty":
		var p BoxIDParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutKillPty, BoxID: p.BoxID}, nil

	case "RestartPty":
		var p BoxIDParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutRestartPty, BoxID: p.BoxID}, nil

	case "QueryPtyStatus":
		var p BoxIDParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutQueryPtyStatus, BoxID: p.BoxID}, nil

	case "SendPtyInput":
		var p SendPtyInputParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutSendPtyInput, BoxID: p.BoxID, Input: []byte(p.Input)}, nil

	case "CloseStream":
		var p CloseStreamParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutCloseStream, BoxID: p.BoxID, StreamID: p.StreamID}, nil

	case "SwitchStream":
		var p SwitchStreamParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutSwitchStream, BoxID: p.BoxID, StreamID: p.StreamID}, nil

	case "ListStreams":
		var p BoxIDParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutListStreams, BoxID: p.BoxID}, nil

	case "StartBoxRefresh":
		var p BoxIDParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutStartBoxRefresh, BoxID: p.BoxID}, nil

	case "StopBoxRefresh":
		var p BoxIDParams
		if err := json.Unmarshal(raw, &p); err != nil {
			return coordinator.Mutation{}, err
		}
		return coordinator.Mutation{Kind: coordinator.MutStopBoxRefresh, BoxID: p.BoxID}, nil

	case "ListBoxes":
		return coordinator.Mutation{Kind: coordinator.MutListBoxes}, nil

	case "GetStatus":
		return coordinator.Mutation{Kind: coordinator.MutGetStatus}, nil

	case "Shutdown":
		return coordinator.Mutation{Kind: coordinator.MutShutdown}, nil

	default:
		return coordinator.Mutation{}, fmt.Errorf("unknown command %q", name)
	}
}
