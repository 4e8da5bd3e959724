// Copyright 2026 Blink Labs Software
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

// Package pipeline decodes a stream of transactions concurrently while
// delivering the records in submission order.
//
// Transactions are decoded by a pool of workers sharing one bmap.Decoder.
// A single ordering goroutine buffers records that finish early and releases
// them once every earlier submission has been released.
//
//	p := pipeline.New(decoder, pipeline.WithWorkers(4))
//	if err := p.Start(ctx); err != nil {
//	    return err
//	}
//	go func() {
//	    for item := range p.Results() {
//	        handle(item.Record(), item.Err())
//	    }
//	}()
//	for _, txn := range txns {
//	    if err := p.Submit(ctx, txn); err != nil {
//	        break
//	    }
//	}
//	p.Stop()
package pipeline
