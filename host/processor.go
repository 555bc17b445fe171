package host

import (
	"github.com/freqlab/clapkit/abi"
	"github.com/freqlab/clapkit/errors"
)

// StoppedProcessor owns an activation whose processing loop has not
// started. It is the only way to reach StartProcessing, so processing a
// stopped plugin is unrepresentable. All methods run on the audio thread.
type StoppedProcessor struct {
	inst *PluginInstance
}

// Start begins a processing run. On refusal or panic the processor stays
// stopped and reusable.
func (p *StoppedProcessor) Start() (*StartedProcessor, error) {
	i := p.inst
	if i == nil {
		return nil, errors.Deactivated(errors.PhaseProcess, "start_processing")
	}

	ok := false
	err := i.guard(errors.PhaseProcess, "start_processing", func() error {
		ok = i.plugin.StartProcessing(i.plugin.Instance)
		return nil
	})
	if err != nil {
		return nil, err
	}
	if !ok {
		return nil, errors.New(errors.PhaseProcess, errors.KindUserCode).
			Operation("start_processing").
			Detail("plugin refused to start processing").
			Build()
	}
	return &StartedProcessor{inst: i}, nil
}

// Reset clears the plugin's playback state. Legal between processing runs.
func (p *StoppedProcessor) Reset() {
	i := p.inst
	if i == nil {
		return
	}
	_ = i.guard(errors.PhaseProcess, "reset", func() error {
		i.plugin.Reset(i.plugin.Instance)
		return nil
	})
}

// StartedProcessor owns a running processing loop. All methods run on the
// audio thread.
type StartedProcessor struct {
	inst *PluginInstance
}

// Process renders one block. A panicking plugin or an error status is
// reported as an error; the block's outputs must then be discarded.
func (p *StartedProcessor) Process(process *abi.Process) (abi.ProcessStatus, error) {
	i := p.inst
	if i == nil {
		return abi.ProcessError, errors.Deactivated(errors.PhaseProcess, "process")
	}
	if process == nil {
		return abi.ProcessError, errors.NilPointer(errors.PhaseProcess, "process struct")
	}

	status := abi.ProcessError
	err := i.guard(errors.PhaseProcess, "process", func() error {
		status = i.plugin.Process(i.plugin.Instance, process)
		return nil
	})
	if err != nil {
		return abi.ProcessError, err
	}
	if status == abi.ProcessError {
		return status, errors.New(errors.PhaseProcess, errors.KindUserCode).
			Operation("process").
			Detail("plugin reported a processing error").
			Build()
	}
	return status, nil
}

// Stop ends the processing run and returns the stopped processor, which
// can start again or be handed back to Deactivate.
func (p *StartedProcessor) Stop() *StoppedProcessor {
	i := p.inst
	if i == nil {
		return &StoppedProcessor{}
	}
	_ = i.guard(errors.PhaseProcess, "stop_processing", func() error {
		i.plugin.StopProcessing(i.plugin.Instance)
		return nil
	})
	p.inst = nil
	return &StoppedProcessor{inst: i}
}
