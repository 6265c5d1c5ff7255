// Copyright 2025 The cppx Authors. All rights reserved.
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

package lexer

type ContainerType int

const (
	ContainerType_None ContainerType = iota
	ContainerType_Namespace
	ContainerType_Class
	ContainerType_Struct
	ContainerType_Enum
	ContainerType_Function
	ContainerType_ConstructorDestructor
	ContainerType_InitializationList
)

// Container is a stack frame describing the syntactic construct currently
// open. Name holds the first identifier seen after the introducer keyword; it
// is used to detect constructor and destructor names.
type Container struct {
	Type   ContainerType
	Name   string
	Braces int
	Parens int
}
