// Package simulation implements the discrete-time bookstore simulation:
// the agent scheduler, the inter-agent message bus, the customer/employee
// turn logic, and the model that ties them to the shared inventory.
//
// Execution is single-threaded and cooperative. One tick is one full
// scheduler sweep over all agents in a fresh random permutation; one
// agent's turn completes fully before the next begins, so agent turns
// never observe a half-applied mutation.
package simulation
