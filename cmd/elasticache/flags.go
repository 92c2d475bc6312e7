/*
Copyright 2023 The Crossplane Authors.

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

package main

import (
	"strconv"

	"gopkg.in/alecthomas/kingpin.v2"
)

// optionalBool is a bool flag that leaves its target nil unless the flag is
// given, so that defaults can be told apart from an explicit false.
type optionalBool struct{ v **bool }

func (o optionalBool) Set(s string) error {
	b, err := strconv.ParseBool(s)
	if err != nil {
		return err
	}
	*o.v = &b
	return nil
}

func (o optionalBool) String() string {
	if *o.v == nil {
		return ""
	}
	return strconv.FormatBool(**o.v)
}

func (o optionalBool) IsBoolFlag() bool { return true }

type optionalString struct{ v **string }

func (o optionalString) Set(s string) error {
	*o.v = &s
	return nil
}

func (o optionalString) String() string {
	if *o.v == nil {
		return ""
	}
	return **o.v
}

type optionalInt struct{ v **int }

func (o optionalInt) Set(s string) error {
	i, err := strconv.Atoi(s)
	if err != nil {
		return err
	}
	*o.v = &i
	return nil
}

func (o optionalInt) String() string {
	if *o.v == nil {
		return ""
	}
	return strconv.Itoa(**o.v)
}

func boolVar(f *kingpin.FlagClause, v **bool) {
	f.SetValue(optionalBool{v})
}

func stringVar(f *kingpin.FlagClause, v **string) {
	f.SetValue(optionalString{v})
}

func intVar(f *kingpin.FlagClause, v **int) {
	f.SetValue(optionalInt{v})
}
