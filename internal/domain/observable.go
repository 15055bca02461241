/*
 * Copyright (c) 2025 by Alexander Drost, Oldenburg, Germany.
 * This file is licensed to you under the Apache License, Version 2.0 (the "License"); you may not use this file except in compliance with the License.  You may obtain a copy of the License at
 *   http://www.apache.org/licenses/LICENSE-2.0
 * Unless required by applicable law or agreed to in writing, software distributed under the License is distributed on an
 * "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.  See the License for the specific language governing permissions and limitations under the License.
 */

package domain

// Change notification for document nodes. Every node embeds a Notifier and
// raises the name of the property that changed after the change is committed.

// Handler receives the name of a changed property.
type Handler func(property string)

// Subscription identifies a registered handler.
type Subscription uint64

// Observable is implemented by every node of the document tree.
type Observable interface {
	Changes() *Notifier
}

type subscriber struct {
	id Subscription
	fn Handler
}

// Notifier keeps the handlers of a single node. The zero value is ready to use.
type Notifier struct {
	subs []subscriber
	next Subscription
}

// Changes returns n so embedding types satisfy Observable.
func (n *Notifier) Changes() *Notifier { return n }

// Subscribe registers fn and returns its subscription.
func (n *Notifier) Subscribe(fn Handler) Subscription {
	n.next++
	n.subs = append(n.subs, subscriber{id: n.next, fn: fn})
	return n.next
}

// Unsubscribe removes a subscription. It reports false when s is unknown.
func (n *Notifier) Unsubscribe(s Subscription) bool {
	for i, sub := range n.subs {
		if sub.id == s {
			subs := make([]subscriber, 0, len(n.subs)-1)
			subs = append(subs, n.subs[:i]...)
			n.subs = append(subs, n.subs[i+1:]...)
			return true
		}
	}
	return false
}

// SubscriberCount returns the number of registered handlers.
func (n *Notifier) SubscriberCount() int { return len(n.subs) }

// Notify calls every handler registered at the time of the call.
// Handlers may subscribe or unsubscribe while being notified.
func (n *Notifier) Notify(property string) {
	if len(n.subs) == 0 {
		return
	}
	subs := n.subs
	for _, s := range subs {
		s.fn(property)
	}
}
