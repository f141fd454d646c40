// Copyright 2017 Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License"). You may
// not use this file except in compliance with the License. A copy of the
// License is located at
//
//     http://aws.amazon.com/apache2.0/
//
// or in the "license" file accompanying this file. This file is distributed
// on an "AS IS" BASIS, WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either
// express or implied. See the License for the specific language governing
// permissions and limitations under the License.

package nsutil

//go:generate mockgen -destination=mocks/nsutil_mocks.go -copyright_file=../../scripts/copyright_file github.com/topotester/topotester/pkg/nsutil NetNS

import (
	"os"
	"path"
	"runtime"
	"sync"

	"github.com/pkg/errors"
	"github.com/vishvananda/netns"
)

// NetNsMountPath is the filesystem directory where named netns are mounted
const NetNsMountPath = "/var/run/netns"

// NetNS manages named network namespaces
type NetNS interface {
	// Create creates the named netns and returns its path. The calling
	// thread's netns is left untouched
	Create(name string) (string, error)
	// Delete unmounts and removes the named netns. Deleting a netns that
	// does not exist is not an error
	Delete(name string) error
	// Path returns the filesystem path of the named netns
	Path(name string) string
}

type netNS struct {
}

// New creates a new NetNS object
func New() NetNS {
	return &netNS{}
}

func (*netNS) Path(name string) string {
	return path.Join(NetNsMountPath, name)
}

func (n *netNS) Create(name string) (string, error) {
	var err error

	// netns.NewNamed switches the calling thread into the new namespace,
	// so the work is done on a dedicated, locked goroutine
	var wg sync.WaitGroup
	wg.Add(1)
	go func() {
		defer wg.Done()
		runtime.LockOSThread()
		defer runtime.UnlockOSThread()

		var origNS netns.NsHandle
		origNS, err = netns.Get()
		if err != nil {
			err = errors.Wrap(err, "create netns: unable to open current netns")
			return
		}
		defer origNS.Close()

		var newNS netns.NsHandle
		newNS, err = netns.NewNamed(name)
		if err != nil {
			err = errors.Wrapf(err, "create netns: unable to create netns %s", name)
			return
		}
		defer newNS.Close()

		if setErr := netns.Set(origNS); setErr != nil {
			err = errors.Wrap(setErr, "create netns: unable to restore original netns")
		}
	}()
	wg.Wait()

	if err != nil {
		return "", err
	}

	return n.Path(name), nil
}

func (n *netNS) Delete(name string) error {
	if _, err := os.Stat(n.Path(name)); os.IsNotExist(err) {
		return nil
	}

	err := netns.DeleteNamed(name)
	if err != nil {
		return errors.Wrapf(err, "delete netns: unable to delete netns %s", name)
	}

	return nil
}
