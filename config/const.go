//  Copyright (c) 2023 Uber Technologies, Inc.
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

package config

// This file hosts non-user-configurable parameters.

// MaxPropagationRounds bounds the propagator's worklist loop purely as a safety net: the
// propagation bitset is monotone and bounded, so convergence is guaranteed well below this count
// for any realistic program; it exists only to turn a hypothetical bug in the propagator into a
// loud failure instead of a silent hang.
const MaxPropagationRounds = 10000

// AnonymousSummaryPrefix is the sentinel prefix package summary uses for synthetic names it
// assigns to function literals that are never bound to any program name.
const AnonymousSummaryPrefix = "<anon#"
