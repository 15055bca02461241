/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

import "github.com/google/uuid"

// Database is a table of records that shapes can bind to.
type Database struct {
	Notifier
	ID           string
	Name         string
	IDColumnName string
	Columns      []*Column
	Records      []*Record
}

func NewDatabase(name string) *Database {
	return &Database{ID: uuid.NewString(), Name: name, IDColumnName: "Id"}
}

func (d *Database) SetColumns(columns []*Column) {
	for _, c := range columns {
		c.Owner = d
	}
	d.Columns = columns
	d.Notify("Columns")
}

func (d *Database) SetRecords(records []*Record) {
	for _, r := range records {
		r.Owner = d
	}
	d.Records = records
	d.Notify("Records")
}

// AddColumn appends a named column.
func (d *Database) AddColumn(name string) *Column {
	c := &Column{ID: uuid.NewString(), Name: name, Owner: d}
	cols := make([]*Column, 0, len(d.Columns)+1)
	d.SetColumns(append(append(cols, d.Columns...), c))
	return c
}

// AddRecord appends r and claims ownership of it.
func (d *Database) AddRecord(r *Record) {
	recs := make([]*Record, 0, len(d.Records)+1)
	d.SetRecords(append(append(recs, d.Records...), r))
}

// FindRecord returns the record with id or nil.
func (d *Database) FindRecord(id string) *Record {
	for _, r := range d.Records {
		if r.ID == id {
			return r
		}
	}
	return nil
}

type Column struct {
	Notifier
	ID        string
	Name      string
	IsVisible bool
	// Owner is a back-reference and is not serialized.
	Owner *Database
}

func (c *Column) SetName(name string) {
	if c.Name == name {
		return
	}
	c.Name = name
	c.Notify("Name")
}

type Record struct {
	Notifier
	ID     string
	Values []*Value
	// Owner is a back-reference and is not serialized.
	Owner *Database
}

func NewRecord(values ...string) *Record {
	r := &Record{ID: uuid.NewString()}
	for _, v := range values {
		r.Values = append(r.Values, &Value{Content: v})
	}
	return r
}

func (r *Record) SetValues(values []*Value) {
	r.Values = values
	r.Notify("Values")
}

type Value struct {
	Notifier
	Content string
}

func (v *Value) SetContent(content string) {
	if v.Content == content {
		return
	}
	v.Content = content
	v.Notify("Content")
}

// Property is a name/value binding on a shape or page.
type Property struct {
	Notifier
	Name  string
	Value string
}

func (p *Property) SetValue(value string) {
	if p.Value == value {
		return
	}
	p.Value = value
	p.Notify("Value")
}
