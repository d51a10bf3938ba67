package observability

import (
	"context"
	"testing"
	"time"
)

func TestNoopHooksDoNotPanic(t *testing.T) {
	ctx := context.Background()

	p := NoopPipelineHooks{}
	p.OnReadStart(ctx, "export.csv")
	p.OnReadComplete(ctx, "export.csv", 120, time.Second, nil)
	p.OnBuildComplete(ctx, 3, 2, time.Millisecond, nil)
	p.OnLayoutComplete(ctx, "Upper School", 14, time.Microsecond)
	p.OnRenderStart(ctx, "Upper School", []string{"png"})
	p.OnRenderComplete(ctx, "Upper School", []string{"png"}, time.Second, nil)

	o := NoopOutputHooks{}
	o.OnFileWritten(ctx, "out/Upper_School.png", 1024)
	o.OnFileError(ctx, "out/Upper_School.png", nil)
}

func TestGlobalHooksRegistry(t *testing.T) {
	Reset()

	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Pipeline() should return NoopPipelineHooks by default")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Output() should return NoopOutputHooks by default")
	}

	customPipeline := &testPipelineHooks{}
	SetPipelineHooks(customPipeline)
	if Pipeline() != customPipeline {
		t.Error("SetPipelineHooks should set custom hooks")
	}

	customOutput := &testOutputHooks{}
	SetOutputHooks(customOutput)
	if Output() != customOutput {
		t.Error("SetOutputHooks should set custom hooks")
	}

	Reset()
	if _, ok := Pipeline().(NoopPipelineHooks); !ok {
		t.Error("Reset() should restore NoopPipelineHooks")
	}
	if _, ok := Output().(NoopOutputHooks); !ok {
		t.Error("Reset() should restore NoopOutputHooks")
	}
}

func TestSetNilHooksIsIgnored(t *testing.T) {
	Reset()

	custom := &testPipelineHooks{}
	SetPipelineHooks(custom)
	SetPipelineHooks(nil)
	if Pipeline() != custom {
		t.Error("SetPipelineHooks(nil) should be ignored")
	}

	out := &testOutputHooks{}
	SetOutputHooks(out)
	SetOutputHooks(nil)
	if Output() != out {
		t.Error("SetOutputHooks(nil) should be ignored")
	}

	Reset()
}

type testPipelineHooks struct{ NoopPipelineHooks }
type testOutputHooks struct{ NoopOutputHooks }
