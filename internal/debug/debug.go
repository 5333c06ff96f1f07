//go:build !debug

// Copyright 2020 ConsenSys Software Inc.
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

// Package debug exposes a single build-tag-gated flag used to enable extra
// sanity checks in hot paths (internal/dag level clustering, circuit
// finalization). Build with -tags debug to turn it on.
package debug

// Debug is true only when built with -tags debug.
const Debug = false
