/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

// Package gesture implements the pan and pinch-zoom engine behind a touch surface.
// A Controller owns the view transform, maps touch points from view space into
// source space, clamps zoom to optional bounds and decides whether a
// single-pointer drag moves an object returned by the host or pans the view.
// Everything runs on the host's event thread; the Controller is not safe for
// concurrent use.
package gesture
