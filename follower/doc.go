// Package follower implements the follower side of an HDMI-CEC device.
//
// A [Follower] session owns one [hal.Adapter]. Every transmit and receive
// goes through a [Gateway], which keeps a [Tracker] of the last time each
// logical address was seen on the bus. Received messages pass an
// [IgnoreFilter] and are handed to [Responder] implementations; the
// [AudioResponder] answers short audio descriptor requests using
// [github.com/ardnew/softcec/sad].
//
//	adapter, err := linux.Open("/dev/cec0")
//	...
//	f := follower.New(adapter, filter, follower.Options{ShowMsgs: true},
//	    follower.NewAudioResponder(descriptors))
//	if err := f.Setup(); err != nil { ... }
//	err = f.Run(ctx)
package follower
