/*
   Copyright 2025 The DIRPX Authors.

   Licensed under the Apache License, Version 2.0 (the "License");
   you may not use this file except in compliance with the License.
   You may obtain a copy of the License at

       http://www.apache.org/licenses/LICENSE-2.0

   Unless required by applicable law or agreed to in writing, software
   distributed under the License is distributed on an "AS IS" BASIS,
   WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
   See the License for the specific language governing permissions and
   limitations under the License.
*/

package decorator

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	"dirpx.dev/standin/apis"
)

// TracerName is the instrumentation name used when no tracer is supplied.
const TracerName = "dirpx.dev/standin"

// Tracing wraps every call in a span called spanName. Failed calls record
// the error and set an error status; the error itself passes through
// unchanged. A nil tracer uses the global otel tracer provider.
func Tracing[A, R any](tracer trace.Tracer, spanName string) apis.Decorator[apis.Callable[A, R]] {
	if tracer == nil {
		tracer = otel.Tracer(TracerName)
	}
	return apis.Decorator[apis.Callable[A, R]]{
		Name: "tracing(" + spanName + ")",
		Wrap: func(next apis.Callable[A, R]) apis.Callable[A, R] {
			return &Traced[A, R]{layer: layer[A, R]{next: next}, tracer: tracer, name: spanName}
		},
	}
}

// Traced is the layer produced by Tracing.
type Traced[A, R any] struct {
	layer[A, R]
	tracer trace.Tracer
	name   string
}

// Call delegates inside a span.
func (t *Traced[A, R]) Call(ctx context.Context, args A) (R, error) {
	ctx, span := t.tracer.Start(ctx, t.name,
		trace.WithAttributes(attribute.String("standin.stand_in", t.name)),
	)
	defer span.End()

	res, err := t.next.Call(ctx, args)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return res, err
	}
	span.SetStatus(codes.Ok, "")
	return res, nil
}

// ClearCalls forwards down the chain.
func (t *Traced[A, R]) ClearCalls() { clearNext(t.next) }

// Reset forwards down the chain.
func (t *Traced[A, R]) Reset() { resetNext(t.next) }
